package cursor

import "fmt"

// Selection represents a half-open byte range [Start, End) of selected
// text, with Start <= End. Selection is an immutable value type.
type Selection struct {
	Start ByteOffset
	End   ByteOffset
}

// NewSelection creates a selection covering [start, end), normalizing
// the order so Start <= End.
func NewSelection(start, end ByteOffset) Selection {
	if start > end {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset is within the selection.
func (s Selection) Contains(offset ByteOffset) bool {
	return offset >= s.Start && offset < s.End
}

// InBounds returns true if the selection lies within content of the
// given byte length.
func (s Selection) InBounds(length ByteOffset) bool {
	return s.Start >= 0 && s.End <= length
}

// Slice returns the selected portion of content. The second return is
// false when the selection does not fit the content.
func (s Selection) Slice(content string) (string, bool) {
	if !s.InBounds(ByteOffset(len(content))) {
		return "", false
	}
	return content[s.Start:s.End], true
}
