// Package installer installs the third-party requirements an extension
// declares in its manifest. The factory treats installation as best-effort:
// an Installer error is logged and the extension is still constructed.
//
// Command shells out to a configured package manager. It inventories what is
// already installed with a list command, plans the batch of missing or
// conflicting requirements using semantic-version constraints, and runs the
// install command once for that batch. Noop is used when no install command
// is configured.
package installer
