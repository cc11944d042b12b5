// Package registry owns the live extension instances of one process and the
// global configuration record that says which extensions to load, in what
// order, with which configuration overrides and under which security flags.
//
// Each name moves through Unloaded, Loaded (enabled or disabled) and back to
// Unloaded. A failure to load one name is logged and never blocks the others;
// the name stays in the persisted record but is absent from the session.
//
// A Registry is driven from a single goroutine and does no locking.
package registry
