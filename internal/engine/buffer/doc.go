// Package buffer provides a UTF-8 validated text buffer with
// boundary-checked mutation. It is the storage layer for document
// content in the editor engine.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Validated load: raw bytes that are not well-formed UTF-8 are
//     rejected, never converted lossily
//   - Boundary-checked range replacement with all-or-nothing semantics
//   - Line counting where a trailing newline does not begin a new
//     segment and empty content still counts as one line
//   - Character counting over byte ranges for selection reporting
//
// Basic usage:
//
//	buf := buffer.New("Hello, World!")
//
//	// Replace "World" with "Go"
//	end, err := buf.ReplaceRange(7, 12, "Go")
//
//	// Load raw bytes, rejecting invalid encodings
//	buf, err := buffer.Load(data)
//
// Position Model:
//
// All positions are byte offsets (ByteOffset). Every offset that
// crosses the package boundary must land on a character boundary so
// that no operation can split a multi-byte encoded character; the
// mutation and slicing entry points enforce this and fail with
// ErrNotCharBoundary rather than corrupting the content.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read
// lock, write operations acquire an exclusive write lock.
package buffer
