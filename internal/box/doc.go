// Package box provides Box, a read-only mapping parsed from YAML or JSON documents
// that can be read by key or by dotted attribute path, with typed accessors
// and struct decoding.
package box
