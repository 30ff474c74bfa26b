package app

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/plumetext/plume/internal/config"
	"github.com/plumetext/plume/internal/engine/buffer"
	"github.com/plumetext/plume/internal/engine/search"
	"github.com/plumetext/plume/internal/vfs"
)

// openTestDocument writes content to an in-memory file and opens it.
func openTestDocument(t *testing.T, content string) (*Document, *vfs.MemFS) {
	t.Helper()

	fsys := vfs.NewMemFS()
	if err := fsys.MkdirAll("/work", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.WriteFile("/work/doc.txt", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(fsys, "/work/doc.txt", config.Default())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return doc, fsys
}

func TestNewDocument(t *testing.T) {
	settings := config.Default()
	settings.WordWrap = false

	doc := NewDocument(settings)

	if doc.Name() != UntitledName {
		t.Errorf("name = %q, expected %q", doc.Name(), UntitledName)
	}
	if doc.Path() != "" {
		t.Errorf("new document should have no path, got %q", doc.Path())
	}
	if doc.IsModified() {
		t.Error("new document should not be modified")
	}
	if doc.LineCount() != 1 {
		t.Errorf("empty document line count = %d, expected 1", doc.LineCount())
	}
	if doc.WordWrap() {
		t.Error("word wrap flag should copy from settings")
	}
	if !doc.LineNumbers() {
		t.Error("line numbers flag should copy from settings")
	}
}

func TestOpenDocument(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo\nwörld")

	if doc.Name() != "doc.txt" {
		t.Errorf("name = %q, expected doc.txt", doc.Name())
	}
	if doc.Path() != "/work/doc.txt" {
		t.Errorf("path = %q, expected /work/doc.txt", doc.Path())
	}
	if doc.Text() != "héllo\nwörld" {
		t.Errorf("content = %q", doc.Text())
	}
	if doc.IsModified() {
		t.Error("freshly opened document should not be modified")
	}
	if doc.SyntaxHint() != "Plain Text" {
		t.Errorf("syntax hint = %q, expected Plain Text", doc.SyntaxHint())
	}
	if doc.CursorOffset() != 0 {
		t.Errorf("cursor should start at 0, got %d", doc.CursorOffset())
	}
}

func TestOpenDocumentMissingFile(t *testing.T) {
	fsys := vfs.NewMemFS()

	_, err := OpenDocument(fsys, "/nope.txt", config.Default())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist through the wrap, got %v", err)
	}
}

func TestOpenDocumentRejectsInvalidUTF8(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.WriteFile("/bad.bin", []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenDocument(fsys, "/bad.bin", config.Default())
	if !errors.Is(err, buffer.ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestOpenDocumentResolvesSyntaxOnce(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.WriteFile("/main.go", []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(fsys, "/main.go", config.Default())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if doc.SyntaxHint() != "Go" {
		t.Errorf("syntax hint = %q, expected Go", doc.SyntaxHint())
	}

	// The hint is resolved at load time and never re-resolved, even
	// when the document is saved under a different extension.
	if err := doc.SaveAs(fsys, "/renamed.md"); err != nil {
		t.Fatalf("save as failed: %v", err)
	}
	if doc.SyntaxHint() != "Go" {
		t.Errorf("syntax hint changed on rename: %q", doc.SyntaxHint())
	}
}

func TestInsertTextMovesCursorToEnd(t *testing.T) {
	doc := NewDocument(config.Default())

	if err := doc.InsertText("hello\nwo"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if !doc.IsModified() {
		t.Error("insert should mark the document modified")
	}
	if doc.CursorOffset() != 8 {
		t.Errorf("cursor = %d, expected 8 (end of buffer)", doc.CursorOffset())
	}
	pos := doc.Position()
	if pos.Line != 1 || pos.Column != 2 {
		t.Errorf("position = %v, expected (1:2)", pos)
	}
	if doc.LineCount() != 2 {
		t.Errorf("line count = %d, expected 2", doc.LineCount())
	}
}

func TestInsertTextAppendsAfterPriorEdit(t *testing.T) {
	doc := NewDocument(config.Default())

	if err := doc.InsertText("ab"); err != nil {
		t.Fatal(err)
	}
	if err := doc.InsertText("cd"); err != nil {
		t.Fatal(err)
	}

	if doc.Text() != "abcd" {
		t.Errorf("content = %q, expected abcd", doc.Text())
	}
}

func TestReplaceRange(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")
	if err := doc.Select(1, 2); err != nil {
		t.Fatal(err)
	}

	if err := doc.ReplaceRange(0, 3, "XY"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if doc.Text() != "XYdef" {
		t.Errorf("content = %q, expected XYdef", doc.Text())
	}
	if doc.CursorOffset() != 5 {
		t.Errorf("cursor = %d, expected end of buffer", doc.CursorOffset())
	}
	if _, ok := doc.Selection(); ok {
		t.Error("edits should drop the selection")
	}
}

func TestReplaceRangeBoundaryErrorLeavesDocumentUnchanged(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo")

	err := doc.ReplaceRange(2, 3, "x")
	if !errors.Is(err, buffer.ErrNotCharBoundary) {
		t.Fatalf("expected ErrNotCharBoundary, got %v", err)
	}

	if doc.Text() != "héllo" {
		t.Errorf("content changed on failed replace: %q", doc.Text())
	}
	if doc.IsModified() {
		t.Error("failed replace should not mark the document modified")
	}
}

func TestSetCursorRecomputesPosition(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo\nwörld")

	doc.SetCursor(doc.Len())

	pos := doc.Position()
	if pos.Line != 1 || pos.Column != 5 {
		t.Errorf("position = %v, expected (1:5)", pos)
	}
}

func TestSetCursorSnapsToBoundary(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo")

	doc.SetCursor(2) // inside the two-byte é

	if doc.CursorOffset() != 1 {
		t.Errorf("cursor = %d, expected snap back to 1", doc.CursorOffset())
	}
}

func TestSelection(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo\nwörld")

	if err := doc.Select(7, 13); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	text, ok := doc.SelectionText()
	if !ok || text != "wörld" {
		t.Errorf("selection text = %q, %v", text, ok)
	}
	if n := doc.SelectionCharCount(); n != 5 {
		t.Errorf("selection char count = %d, expected 5 (not byte count 6)", n)
	}

	doc.ClearSelection()
	if _, ok := doc.Selection(); ok {
		t.Error("selection should be cleared")
	}
}

func TestSelectRejectsInvalidRanges(t *testing.T) {
	doc, _ := openTestDocument(t, "héllo")

	if err := doc.Select(0, 99); !errors.Is(err, buffer.ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := doc.Select(0, 2); !errors.Is(err, buffer.ErrNotCharBoundary) {
		t.Errorf("expected ErrNotCharBoundary, got %v", err)
	}
}

func TestFindFromSelectsMatch(t *testing.T) {
	doc, _ := openTestDocument(t, "abcabc")

	off, err := doc.FindFrom("abc", 1)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if off != 3 {
		t.Errorf("offset = %d, expected 3", off)
	}
	if doc.CursorOffset() != 3 {
		t.Errorf("cursor = %d, expected match start", doc.CursorOffset())
	}
	sel, ok := doc.Selection()
	if !ok || sel.Start != 3 || sel.End != 6 {
		t.Errorf("selection = %v, %v, expected [3:6)", sel, ok)
	}
	if pos := doc.Position(); pos.Column != 3 {
		t.Errorf("position = %v, expected column 3", pos)
	}
}

func TestFindFromMiss(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")

	_, err := doc.FindFrom("zzz", 0)
	if !errors.Is(err, search.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := doc.Selection(); ok {
		t.Error("miss should not set a selection")
	}
}

func TestReplaceSelected(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")
	if err := doc.Select(0, 3); err != nil {
		t.Fatal(err)
	}

	if err := doc.ReplaceSelected("abc", "XY"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if doc.Text() != "XYdef" {
		t.Errorf("content = %q, expected XYdef", doc.Text())
	}
	sel, ok := doc.Selection()
	if !ok || sel.Start != 0 || sel.End != 2 {
		t.Errorf("selection = %v, %v, expected [0:2)", sel, ok)
	}
	if !doc.IsModified() {
		t.Error("replace should mark the document modified")
	}
}

func TestReplaceSelectedClampsCursor(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")
	doc.SetCursor(6)
	if err := doc.Select(0, 3); err != nil {
		t.Fatal(err)
	}

	if err := doc.ReplaceSelected("abc", ""); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if doc.Text() != "def" {
		t.Errorf("content = %q, expected def", doc.Text())
	}
	if doc.CursorOffset() != 3 {
		t.Errorf("cursor = %d, expected clamp to new end 3", doc.CursorOffset())
	}
}

func TestReplaceSelectedMismatchLeavesDocumentUnchanged(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")
	if err := doc.Select(0, 3); err != nil {
		t.Fatal(err)
	}

	err := doc.ReplaceSelected("xyz", "Q")
	if !errors.Is(err, search.ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}

	if doc.Text() != "abcdef" {
		t.Errorf("content changed on mismatch: %q", doc.Text())
	}
	if doc.IsModified() {
		t.Error("mismatch should not mark the document modified")
	}
}

func TestReplaceSelectedNoSelection(t *testing.T) {
	doc, _ := openTestDocument(t, "abcdef")

	if err := doc.ReplaceSelected("abc", "XY"); !errors.Is(err, search.ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	doc := NewDocument(config.Default())

	if err := doc.Save(vfs.NewMemFS()); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}

func TestSaveAsAdoptsPath(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.MkdirAll("/docs", 0o755); err != nil {
		t.Fatal(err)
	}

	doc := NewDocument(config.Default())
	if err := doc.InsertText("hello"); err != nil {
		t.Fatal(err)
	}

	if err := doc.SaveAs(fsys, "/docs/out.txt"); err != nil {
		t.Fatalf("save as failed: %v", err)
	}

	if doc.Path() != "/docs/out.txt" {
		t.Errorf("path = %q", doc.Path())
	}
	if doc.Name() != "out.txt" {
		t.Errorf("name = %q, expected out.txt", doc.Name())
	}
	if doc.IsModified() {
		t.Error("save should clear the modified flag")
	}

	data, err := fsys.ReadFile("/docs/out.txt")
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("written content = %q", data)
	}
}

func TestOpenSaveRoundTripIsByteIdentical(t *testing.T) {
	original := "héllo\r\nwörld\n\ttabs and trailing newline\n"
	doc, fsys := openTestDocument(t, original)

	if err := doc.Save(fsys); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := fsys.ReadFile("/work/doc.txt")
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != original {
		t.Errorf("round trip not byte-identical:\n got %q\nwant %q", data, original)
	}
}

func TestApplySettings(t *testing.T) {
	doc := NewDocument(config.Default())

	settings := config.Default()
	settings.WordWrap = false
	settings.LineNumbers = false
	doc.ApplySettings(settings)

	if doc.WordWrap() || doc.LineNumbers() {
		t.Error("flags should follow applied settings")
	}
}
