// Package state persists one key/value map per extension. A Store is opened
// for a single extension, loads its map once, and writes the whole map back
// synchronously on every mutation. Two backends are provided: one YAML file
// per extension (the default) and a single BoltDB file with one key per
// extension.
package state
