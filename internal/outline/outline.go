// Package outline derives navigation views from document content: a
// declaration list for jump-to-function panels and per-line previews
// for a document map.
//
// Declaration scanning does no language parsing: a line qualifies when
// its trimmed text contains one of a fixed set of declaration markers.
package outline

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// DefaultPreviewWidth is the maximum number of grapheme clusters
	// in a document map preview line.
	DefaultPreviewWidth = 30

	// MaxPreviewLines caps how many lines the document map renders.
	MaxPreviewLines = 100
)

// declarationMarkers are the substrings that mark a line as a
// declaration across the supported languages.
var declarationMarkers = []string{
	"fn ",
	"function ",
	"def ",
	"class ",
	"struct ",
	"impl ",
}

// Entry is one declaration found in a document. Line is 0-indexed so
// it can feed scroll-to-line directly.
type Entry struct {
	Line int
	Text string
}

// Scan returns the declarations found in content, in document order.
func Scan(content string) []Entry {
	var entries []Entry

	for i, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		for _, marker := range declarationMarkers {
			if strings.Contains(trimmed, marker) {
				entries = append(entries, Entry{Line: i, Text: trimmed})
				break
			}
		}
	}

	return entries
}

// Map returns preview strings for the first MaxPreviewLines lines of
// content, each truncated to at most width grapheme clusters with an
// ellipsis. Truncation never splits a multi-byte character. A width
// of zero or less uses DefaultPreviewWidth.
func Map(content string, width int) []string {
	if width <= 0 {
		width = DefaultPreviewWidth
	}

	lines := splitLines(content)
	if len(lines) > MaxPreviewLines {
		lines = lines[:MaxPreviewLines]
	}

	previews := make([]string, len(lines))
	for i, line := range lines {
		short, cut := truncate(line, width)
		if cut {
			short += "..."
		}
		previews[i] = short
	}

	return previews
}

// splitLines splits content into lines: \n delimits, a \r before the
// delimiter is dropped, and a trailing newline does not produce an
// empty final line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// truncate returns at most max grapheme clusters of s, reporting
// whether anything was cut.
func truncate(s string, max int) (string, bool) {
	var out strings.Builder
	state := -1
	rest := s

	for n := 0; n < max && rest != ""; n++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		out.WriteString(cluster)
	}

	if rest == "" {
		return s, false
	}
	return out.String(), true
}
