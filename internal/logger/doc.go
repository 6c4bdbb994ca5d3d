// Package logger provides process-wide structured logging on top of Zap.
// It keeps a single sugared logger with an atomic level, lets callers attach
// named loggers to a context, and offers plain, formatted and key-value
// helpers for every level.
package logger
