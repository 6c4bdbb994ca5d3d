// Package app wires the configuration, the process-wide logger and the I/O helpers
// of the common package into the operations exposed by the command line.
package app
