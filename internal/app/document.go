package app

import (
	"path/filepath"

	"github.com/plumetext/plume/internal/config"
	"github.com/plumetext/plume/internal/engine/buffer"
	"github.com/plumetext/plume/internal/engine/cursor"
	"github.com/plumetext/plume/internal/engine/search"
	"github.com/plumetext/plume/internal/engine/viewport"
	"github.com/plumetext/plume/internal/syntax"
	"github.com/plumetext/plume/internal/vfs"
)

// UntitledName is the display name for documents that have never been
// given a filesystem location.
const UntitledName = "Untitled"

// Document aggregates one open file's text buffer with its cursor,
// selection, scroll and presentation state. Coordinates exposed by the
// document are byte offsets that always lie on character boundaries;
// the line/column pair is derived from the cursor offset and
// recomputed after every mutation.
//
// A Document belongs to one Session and is not safe for concurrent
// use; the buffer underneath carries its own lock for read-side
// consumers such as renderers.
type Document struct {
	buf  *buffer.Buffer
	view *viewport.State

	path     string
	name     string
	modified bool

	cursorOffset buffer.ByteOffset
	pos          cursor.Position
	selection    *cursor.Selection

	syntaxHint  string
	lineNumbers bool
	wordWrap    bool
}

// NewDocument creates an empty, never-saved document with presentation
// flags copied from the given settings.
func NewDocument(settings config.Settings) *Document {
	return &Document{
		buf:         buffer.New(""),
		view:        viewport.New(1),
		name:        UntitledName,
		lineNumbers: settings.LineNumbers,
		wordWrap:    settings.WordWrap,
	}
}

// OpenDocument hydrates a document from a file. The raw bytes must be
// valid UTF-8; anything else fails the load rather than being
// converted lossily. The syntax hint is resolved from the file
// extension once, here, and never re-resolved.
func OpenDocument(fsys vfs.FS, path string, settings config.Settings) (*Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	buf, err := buffer.Load(data)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := &Document{
		buf:         buf,
		view:        viewport.New(buf.LineCount()),
		path:        path,
		name:        filepath.Base(path),
		lineNumbers: settings.LineNumbers,
		wordWrap:    settings.WordWrap,
	}
	if label, ok := syntax.Resolve(path); ok {
		doc.syntaxHint = label
	}
	return doc, nil
}

// Accessors

// Name returns the display name, the filename or "Untitled".
func (d *Document) Name() string { return d.name }

// Path returns the filesystem location, empty for never-saved documents.
func (d *Document) Path() string { return d.path }

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool { return d.modified }

// SyntaxHint returns the language label resolved at load time, empty
// when the extension was not recognized.
func (d *Document) SyntaxHint() string { return d.syntaxHint }

// LineNumbers returns the line-number gutter flag.
func (d *Document) LineNumbers() bool { return d.lineNumbers }

// WordWrap returns the word-wrap flag.
func (d *Document) WordWrap() bool { return d.wordWrap }

// Text returns the full document content.
func (d *Document) Text() string { return d.buf.Text() }

// Len returns the content length in bytes.
func (d *Document) Len() buffer.ByteOffset { return d.buf.Len() }

// LineCount returns the number of lines in the content, minimum 1.
func (d *Document) LineCount() int { return d.buf.LineCount() }

// View returns the document's scroll state.
func (d *Document) View() *viewport.State { return d.view }

// CursorOffset returns the cursor's byte offset.
func (d *Document) CursorOffset() buffer.ByteOffset { return d.cursorOffset }

// Position returns the cursor's derived line/column coordinates.
func (d *Document) Position() cursor.Position { return d.pos }

// Editing

// InsertText inserts text at the cursor. Like every content mutation,
// it marks the document modified and leaves the cursor at the end of
// the buffer.
func (d *Document) InsertText(text string) error {
	return d.ReplaceRange(d.cursorOffset, d.cursorOffset, text)
}

// ReplaceRange replaces the bytes in [start, end) with text. Offsets
// must lie on character boundaries; on error the document is
// unchanged.
func (d *Document) ReplaceRange(start, end buffer.ByteOffset, text string) error {
	if _, err := d.buf.ReplaceRange(start, end, text); err != nil {
		return err
	}
	d.afterEdit()
	return nil
}

// afterEdit applies the shared post-mutation sequence: mark modified,
// reposition the cursor at the end of the buffer, drop the selection,
// recompute coordinates and re-clamp the scroll bounds.
func (d *Document) afterEdit() {
	d.modified = true
	d.cursorOffset = d.buf.Len()
	d.selection = nil
	d.recompute()
	d.view.SetLineCount(d.buf.LineCount())
}

// recompute rederives the line/column pair from the cursor offset.
func (d *Document) recompute() {
	d.pos = cursor.Locate(d.buf.Text(), d.cursorOffset)
}

// Cursor and Selection

// SetCursor moves the cursor to the given byte offset, snapped to the
// nearest character boundary at or before it, and recomputes the
// line/column coordinates.
func (d *Document) SetCursor(offset buffer.ByteOffset) {
	d.cursorOffset = cursor.Clamp(d.buf.Text(), offset)
	d.recompute()
}

// Select sets the selection to the half-open byte range [start, end).
// Both ends must lie on character boundaries within the content.
func (d *Document) Select(start, end buffer.ByteOffset) error {
	sel := cursor.NewSelection(start, end)
	if !sel.InBounds(d.buf.Len()) {
		return buffer.ErrRangeInvalid
	}
	if !d.buf.IsCharBoundary(sel.Start) || !d.buf.IsCharBoundary(sel.End) {
		return buffer.ErrNotCharBoundary
	}
	d.selection = &sel
	return nil
}

// ClearSelection drops the selection if one is active.
func (d *Document) ClearSelection() { d.selection = nil }

// Selection returns the active selection, if any.
func (d *Document) Selection() (cursor.Selection, bool) {
	if d.selection == nil {
		return cursor.Selection{}, false
	}
	return *d.selection, true
}

// SelectionText returns the selected slice of content.
func (d *Document) SelectionText() (string, bool) {
	if d.selection == nil {
		return "", false
	}
	return d.selection.Slice(d.buf.Text())
}

// SelectionCharCount returns the size of the selection in characters,
// not bytes, for status reporting over multi-byte content. Zero when
// nothing is selected.
func (d *Document) SelectionCharCount() int {
	if d.selection == nil {
		return 0
	}
	n, err := d.buf.SliceChars(d.selection.Start, d.selection.End)
	if err != nil {
		return 0
	}
	return n
}

// Search

// FindFrom locates needle at or after start and, on a hit, moves the
// cursor to the match and selects it.
func (d *Document) FindFrom(needle string, start buffer.ByteOffset) (buffer.ByteOffset, error) {
	off, err := search.FindFrom(d.buf.Text(), needle, start)
	if err != nil {
		return 0, err
	}

	sel := cursor.NewSelection(off, off+buffer.ByteOffset(len(needle)))
	d.selection = &sel
	d.cursorOffset = off
	d.recompute()
	return off, nil
}

// ReplaceSelected replaces the selection with replacement, but only
// when the selected text still equals needle byte for byte. On success
// the selection covers the replacement text and the cursor keeps its
// offset, re-clamped to the new content; on error the document is
// unchanged.
func (d *Document) ReplaceSelected(needle, replacement string) error {
	sel := d.selection
	_, newSel, err := search.ReplaceSelected(d.buf.Text(), sel, needle, replacement)
	if err != nil {
		return err
	}

	if _, err := d.buf.ReplaceRange(sel.Start, sel.End, replacement); err != nil {
		return err
	}
	d.selection = &newSel
	d.modified = true
	d.cursorOffset = cursor.Clamp(d.buf.Text(), d.cursorOffset)
	d.recompute()
	d.view.SetLineCount(d.buf.LineCount())
	return nil
}

// Persistence

// Save writes the content to the document's path. A document that has
// never been given a location fails with ErrNoPath; callers prompt for
// a path and use SaveAs.
func (d *Document) Save(fsys vfs.FS) error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.SaveAs(fsys, d.path)
}

// SaveAs writes the content to the given path and adopts it as the
// document's location, clearing the modified flag. The write is the
// buffer's exact bytes, so an unedited open-save round trip is
// byte-identical. The syntax hint is not re-resolved on rename.
func (d *Document) SaveAs(fsys vfs.FS, path string) error {
	if err := fsys.WriteFile(path, d.buf.Bytes(), 0o644); err != nil {
		return NewOperationError("save", path, err)
	}
	d.path = path
	d.name = filepath.Base(path)
	d.modified = false
	return nil
}

// ApplySettings refreshes the presentation flags from global settings.
// Called at creation and whenever settings change.
func (d *Document) ApplySettings(settings config.Settings) {
	d.lineNumbers = settings.LineNumbers
	d.wordWrap = settings.WordWrap
}
