// Package userdata manages the ~/.plugx/ directory: the plugins root, the
// per-extension state directory, the bolt state database, the global
// registry record and the settings file. It handles path resolution,
// initialization, permission enforcement and the doctor health check.
package userdata
