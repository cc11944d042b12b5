// Package security evaluates an extension's declared permissions against the
// host-wide security flags and provides the input sanitization routine
// extensions apply to user-supplied text. Permissions are advisory: they gate
// loading and IsEnabled, they do not sandbox anything.
package security
