// Package scaffold generates a new extension from embedded templates. It
// powers the "plugx create" command, producing the descriptor, a Go
// implementation skeleton and a README, then validates the descriptor
// against the manifest schema.
package scaffold
