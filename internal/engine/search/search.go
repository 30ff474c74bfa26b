// Package search locates literal text in document content and applies
// the strict find-then-replace-selection protocol: a replacement only
// proceeds when the selected slice still equals the needle byte for
// byte, so a buffer changed between find and replace can never have
// the wrong occurrence replaced.
package search

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/plumetext/plume/internal/engine/buffer"
	"github.com/plumetext/plume/internal/engine/cursor"
)

// Errors returned by search operations.
var (
	ErrNotFound    = errors.New("text not found")
	ErrNoSelection = errors.New("no text selected")
	ErrMismatch    = errors.New("selected text doesn't match search text")
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// FindFrom returns the byte offset of the first occurrence of needle
// at or after start, leftmost match first. An empty needle matches at
// start itself. The start offset must lie within the content and on a
// character boundary; violations fail with buffer.ErrRangeInvalid or
// buffer.ErrNotCharBoundary. A clean miss fails with ErrNotFound.
func FindFrom(content, needle string, start ByteOffset) (ByteOffset, error) {
	if start < 0 || start > ByteOffset(len(content)) {
		return 0, buffer.ErrRangeInvalid
	}
	if start < ByteOffset(len(content)) && !utf8.RuneStart(content[start]) {
		return 0, buffer.ErrNotCharBoundary
	}

	if i := strings.Index(content[start:], needle); i >= 0 {
		return start + ByteOffset(i), nil
	}
	return 0, ErrNotFound
}

// Find is the lookup variant for callers whose start offset is already
// known to be a valid boundary (cursor positions are). It reports a
// miss, or any invalid start, as false.
func Find(content, needle string, start ByteOffset) (ByteOffset, bool) {
	off, err := FindFrom(content, needle, start)
	if err != nil {
		return 0, false
	}
	return off, true
}

// ReplaceSelected replaces the selected slice of content with
// replacement, but only when that slice equals needle byte for byte.
// A nil selection fails with ErrNoSelection; a selection that does not
// fit the content fails with buffer.ErrRangeInvalid; a slice that
// differs from needle fails with ErrMismatch. On success it returns
// the new content and the selection covering the replacement text; on
// any error the returned content is the input, untouched.
func ReplaceSelected(content string, sel *cursor.Selection, needle, replacement string) (string, cursor.Selection, error) {
	if sel == nil {
		return content, cursor.Selection{}, ErrNoSelection
	}

	selected, ok := sel.Slice(content)
	if !ok {
		return content, cursor.Selection{}, buffer.ErrRangeInvalid
	}
	if selected != needle {
		return content, cursor.Selection{}, ErrMismatch
	}

	var sb strings.Builder
	sb.Grow(len(content) - len(needle) + len(replacement))
	sb.WriteString(content[:sel.Start])
	sb.WriteString(replacement)
	sb.WriteString(content[sel.End:])

	newSel := cursor.NewSelection(sel.Start, sel.Start+ByteOffset(len(replacement)))
	return sb.String(), newSel, nil
}
