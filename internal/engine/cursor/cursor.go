package cursor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/plumetext/plume/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Position is a line/column coordinate pair.
// Both are 0-indexed; Column is measured in characters, not bytes.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Locate computes the position of a byte offset within content.
// Line is the count of newlines strictly before the offset; Column is
// the character count from the last newline (or the start) to the
// offset. The offset must lie on a character boundary; out-of-range
// offsets are clamped to the content.
func Locate(content string, offset ByteOffset) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(content)) {
		offset = ByteOffset(len(content))
	}

	before := content[:offset]
	lineStart := 0
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		lineStart = i + 1
	}

	return Position{
		Line:   strings.Count(before, "\n"),
		Column: utf8.RuneCountInString(before[lineStart:]),
	}
}

// Offset is the inverse of Locate: it walks content to the byte offset
// of the given position. Lines beyond the content resolve to the end
// of the content; columns beyond a line's length resolve to the end of
// that line.
func Offset(content string, pos Position) ByteOffset {
	off := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(content[off:], '\n')
		if i < 0 {
			return ByteOffset(len(content))
		}
		off += i + 1
	}

	for col := 0; col < pos.Column && off < len(content); col++ {
		r, size := utf8.DecodeRuneInString(content[off:])
		if r == '\n' {
			break
		}
		off += size
	}

	return ByteOffset(off)
}

// Clamp snaps an offset to the nearest character boundary at or before
// it, bounded to [0, len(content)].
func Clamp(content string, offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset >= ByteOffset(len(content)) {
		return ByteOffset(len(content))
	}
	for offset > 0 && !utf8.RuneStart(content[offset]) {
		offset--
	}
	return offset
}
