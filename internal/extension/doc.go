// Package extension defines the capability contract every extension
// implements and the embeddable Base that derives identity, configuration
// and state from the injected manifest.
//
// Concrete extensions embed *Base and add RenderInterface and UnloadFlush;
// Base deliberately implements neither, so every implementation states how
// it draws itself and whether unloading flushes its state. Hooks default to
// no-ops except OnUnload, which flushes state.
//
// Nothing here is safe for concurrent use. The registry that owns the
// instances is driven from a single goroutine.
package extension
