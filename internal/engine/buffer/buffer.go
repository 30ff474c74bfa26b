package buffer

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrInvalidUTF8     = errors.New("content is not valid UTF-8")
	ErrNotCharBoundary = errors.New("offset is not on a character boundary")
	ErrRangeInvalid    = errors.New("invalid range")
)

// ByteOffset represents a byte position in the buffer.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// Buffer owns a document's textual content as a flat string.
// Content is valid UTF-8 at all times: loads reject invalid input and
// mutations are refused before they can split a multi-byte character.
// All methods are thread-safe.
type Buffer struct {
	mu       sync.RWMutex
	content  string
	revision uint64
}

// New creates a buffer with initial content, stored verbatim.
// The text must already be valid UTF-8 (Go source literals and user
// input are); use Load for raw bytes of unknown validity.
func New(text string) *Buffer {
	return &Buffer{content: text}
}

// Load creates a buffer from raw bytes, validating that they are
// well-formed UTF-8. Invalid input fails with ErrInvalidUTF8 rather
// than being converted lossily.
func Load(data []byte) (*Buffer, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return &Buffer{content: string(data)}, nil
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// Bytes returns a copy of the buffer content as raw bytes.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return []byte(b.content)
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := checkRange(b.content, start, end); err != nil {
		return "", err
	}
	return b.content[start:end], nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content) == 0
}

// LineCount returns the number of newline-delimited segments, at
// minimum 1. A trailing newline does not begin a new segment: "a\n"
// has one line, "a\nb" has two, and empty content has one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lineCount(b.content)
}

// SliceChars returns the number of characters (not bytes) in the byte
// range [start, end). Used to report selection sizes in character
// terms for multi-byte content.
func (b *Buffer) SliceChars(start, end ByteOffset) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := checkRange(b.content, start, end); err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(b.content[start:end]), nil
}

// IsCharBoundary reports whether the offset lies on a character
// boundary of the content. Offsets outside [0, Len()] are not
// boundaries.
func (b *Buffer) IsCharBoundary(offset ByteOffset) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return isCharBoundary(b.content, offset)
}

// Write Operations

// ReplaceRange replaces the bytes in [start, end) with text and
// returns the offset just past the inserted text. Start and end must
// lie on character boundaries and text must be valid UTF-8; on any
// error the buffer is unchanged.
func (b *Buffer) ReplaceRange(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := checkRange(b.content, start, end); err != nil {
		return 0, err
	}
	if !utf8.ValidString(text) {
		return 0, ErrInvalidUTF8
	}

	var sb strings.Builder
	sb.Grow(len(b.content) - int(end-start) + len(text))
	sb.WriteString(b.content[:start])
	sb.WriteString(text)
	sb.WriteString(b.content[end:])
	b.content = sb.String()
	b.revision++

	return start + ByteOffset(len(text)), nil
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	return b.ReplaceRange(offset, offset, text)
}

// Delete removes the bytes in [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.ReplaceRange(start, end, "")
	return err
}

// Buffer State

// Revision returns a counter incremented by every successful mutation.
// Failed mutations leave it unchanged.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Internal helpers

func lineCount(s string) int {
	if s == "" {
		return 1
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func isCharBoundary(s string, offset ByteOffset) bool {
	if offset < 0 || offset > ByteOffset(len(s)) {
		return false
	}
	if offset == 0 || offset == ByteOffset(len(s)) {
		return true
	}
	return utf8.RuneStart(s[offset])
}

// checkRange validates that [start, end) is well-formed and that both
// ends land on character boundaries.
func checkRange(s string, start, end ByteOffset) error {
	if start < 0 || start > end || end > ByteOffset(len(s)) {
		return ErrRangeInvalid
	}
	if !isCharBoundary(s, start) || !isCharBoundary(s, end) {
		return ErrNotCharBoundary
	}
	return nil
}
