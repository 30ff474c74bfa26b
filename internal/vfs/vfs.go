// Package vfs provides the file system abstraction behind document
// load/save and settings persistence, so those flows can run against
// an in-memory implementation in tests.
package vfs

import "io/fs"

// FS is the narrow file system surface the editor core needs.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	// The parent directory must exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool
}
