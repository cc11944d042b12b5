// Package config manages host settings stored at ~/.plugx/config.yaml with
// PLUGX_-prefixed environment overrides: log level and format, the state
// backend, the dependency installer commands and the fallback host version.
package config
