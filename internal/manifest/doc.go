// Package manifest reads and writes extension descriptors. Each extension
// lives in its own directory under the plugins root and carries a
// plugin.yaml describing its identity, host-version bounds, configuration
// defaults, security requirements and third-party dependencies. Descriptors
// are validated against an embedded JSON Schema before they are decoded.
package manifest
