// Package utils provides small helpers for file handling and slice transformation
// shared by the configuration and command packages.
package utils
