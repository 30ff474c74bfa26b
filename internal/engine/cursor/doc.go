// Package cursor derives user-facing coordinates from buffer content
// and byte offsets, and provides the selection value type.
//
// Coordinate Model:
//
// Content is indexed by byte offsets, but lines and columns are
// reported in character terms:
//
//   - Line: the number of newline bytes strictly before the offset
//   - Column: the number of characters (not bytes) between the last
//     newline before the offset and the offset itself
//
// Both are 0-indexed. Column counting in characters keeps coordinates
// meaningful for multi-byte content: a cursor after "wör" is at column
// 3 even though "wör" occupies 4 bytes.
//
// Offsets passed to Locate must lie on character boundaries; callers
// establish that through the buffer's boundary-checked operations.
// Clamp is provided to snap untrusted offsets to the nearest
// preceding boundary.
//
// Selection is an immutable half-open byte range [Start, End) with
// Start <= End, normalized at construction.
package cursor
