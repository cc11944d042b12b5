// Package logging builds the logrus logger shared by the registry, the
// factory and the state store. Command output still goes to the cobra
// command's writers; this package only carries operational records.
package logging
