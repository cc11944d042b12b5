// Package cli defines the Cobra command tree for the plugx CLI. Each command
// file registers one top-level command with the root command; app.go and
// output.go hold what they share. Commands build the registry for a single
// process run through openApp and delegate to internal packages; they only
// handle arguments, output formatting and exit status.
package cli
