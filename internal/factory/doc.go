// Package factory turns an extension name into a live, initialized
// extension. Build runs a fixed pipeline: load the manifest, resolve the
// implementation in the Catalog, apply the compatibility and permission
// gates, install declared dependencies (best-effort), construct with the
// manifest injected, verify identity, and run OnInit.
//
// Implementations are found through an explicit Catalog filled at startup,
// never by scanning code. Every rejection is logged with the plugin, gate
// and reason fields; Create returns nil on any failure.
package factory
