// Package common provides the filesystem and config I/O helpers shared by every
// pipeline stage: YAML configs, directories, JSON documents, MessagePack blobs,
// file sizes and base64-encoded images.
//
// Binary blobs are stored as a single MessagePack value (https://msgpack.org)
// without any header, so they can be read by any MessagePack implementation.
package common
