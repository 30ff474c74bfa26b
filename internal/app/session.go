package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/plumetext/plume/internal/config"
	"github.com/plumetext/plume/internal/engine/buffer"
	"github.com/plumetext/plume/internal/engine/search"
	"github.com/plumetext/plume/internal/outline"
	"github.com/plumetext/plume/internal/vfs"
)

// StatusExpiry is how long a status message stays visible.
const StatusExpiry = 3 * time.Second

// Session is the central coordinator for open documents. It owns the
// document collection and the active index, applies settings across
// documents, runs the find/replace protocol, and reports outcomes as
// user-facing status messages.
//
// A Session is not safe for concurrent use. Every operation runs to
// completion inside one frame callback of the hosting UI loop, so no
// locking happens at this layer.
type Session struct {
	fsys   vfs.FS
	logger *Logger
	now    func() time.Time

	docs   *Collection
	active int // -1 when no document is active

	settings config.Settings

	status   string
	statusAt time.Time

	lastAutoSave time.Time
}

// Options configures a session.
type Options struct {
	// FS is the filesystem used for document I/O.
	// Defaults to the host filesystem.
	FS vfs.FS

	// Logger receives session activity. Defaults to stderr at info level.
	Logger *Logger

	// Now supplies the clock used for status expiry and auto-save
	// gating. Defaults to time.Now.
	Now func() time.Time
}

// NewSession creates a session with the given settings.
func NewSession(settings config.Settings, opts Options) *Session {
	if opts.FS == nil {
		opts.FS = &vfs.OSFS{}
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(DefaultLoggerConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		fsys:     opts.FS,
		logger:   opts.Logger.WithComponent("session"),
		now:      opts.Now,
		docs:     NewCollection(),
		active:   -1,
		settings: settings,
	}
	s.lastAutoSave = s.now()
	return s
}

// Document Management

// NewDocument opens an empty document, makes it active and returns its
// index.
func (s *Session) NewDocument() int {
	idx := s.docs.Add(NewDocument(s.settings))
	s.active = idx
	s.SetStatus("New document created")
	s.logger.Debug("created document %d", idx)
	return idx
}

// OpenFile loads a file into a new document, makes it active and
// returns its index. On failure the error text is surfaced as the
// status message and the returned index is -1.
func (s *Session) OpenFile(path string) (int, error) {
	doc, err := OpenDocument(s.fsys, path, s.settings)
	if err != nil {
		s.SetStatus(fmt.Sprintf("Error opening file: %v", err))
		s.logger.Error("open %s: %v", path, err)
		return -1, err
	}

	idx := s.docs.Add(doc)
	s.active = idx
	s.settings.AddRecentFile(path)
	s.SetStatus(fmt.Sprintf("Opened %s", path))
	s.logger.Info("opened %s", path)
	return idx, nil
}

// SaveActive writes the active document to its path. A document that
// has never been saved fails with ErrNoPath; the caller prompts for a
// location and retries with SaveActiveAs.
func (s *Session) SaveActive() error {
	doc, ok := s.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}

	if err := doc.Save(s.fsys); err != nil {
		if !errors.Is(err, ErrNoPath) {
			s.SetStatus(fmt.Sprintf("Error saving file: %v", err))
			s.logger.Error("save %s: %v", doc.Path(), err)
		}
		return err
	}

	s.SetStatus(fmt.Sprintf("Saved %s", doc.Path()))
	s.logger.Info("saved %s", doc.Path())
	return nil
}

// SaveActiveAs writes the active document to the given path, which it
// adopts as its location.
func (s *Session) SaveActiveAs(path string) error {
	doc, ok := s.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}

	if err := doc.SaveAs(s.fsys, path); err != nil {
		s.SetStatus(fmt.Sprintf("Error saving file: %v", err))
		s.logger.Error("save %s: %v", path, err)
		return err
	}

	s.settings.AddRecentFile(path)
	s.SetStatus(fmt.Sprintf("Saved to %s", path))
	s.logger.Info("saved %s", path)
	return nil
}

// CloseDocument removes the document at index and reports whether a
// removal occurred; out-of-range indexes are silently ignored. After a
// close the active index is reconciled: none when the collection is
// empty, otherwise min(old index, new length - 1).
func (s *Session) CloseDocument(index int) bool {
	if !s.docs.Close(index) {
		return false
	}

	if s.docs.Len() == 0 {
		s.active = -1
	} else if s.active >= s.docs.Len() {
		s.active = s.docs.Len() - 1
	}
	s.SetStatus("Document closed")
	s.logger.Debug("closed document %d", index)
	return true
}

// CloseActive closes the active document.
func (s *Session) CloseActive() bool {
	return s.CloseDocument(s.active)
}

// ActiveIndex returns the active document index; false when no
// document is open.
func (s *Session) ActiveIndex() (int, bool) {
	return s.active, s.active >= 0
}

// ActiveDocument returns the active document; false when none is open.
func (s *Session) ActiveDocument() (*Document, bool) {
	return s.docs.Get(s.active)
}

// SetActive switches the active document; out-of-range indexes are
// ignored.
func (s *Session) SetActive(index int) bool {
	if index < 0 || index >= s.docs.Len() {
		return false
	}
	s.active = index
	return true
}

// Documents returns the open documents in order.
func (s *Session) Documents() []*Document {
	return s.docs.Documents()
}

// Count returns the number of open documents.
func (s *Session) Count() int {
	return s.docs.Len()
}

// Editing

// InsertText inserts text at the active document's cursor.
func (s *Session) InsertText(text string) error {
	doc, ok := s.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}
	return doc.InsertText(text)
}

// ReplaceRange replaces [start, end) of the active document with text.
func (s *Session) ReplaceRange(start, end buffer.ByteOffset, text string) error {
	doc, ok := s.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}
	return doc.ReplaceRange(start, end, text)
}

// Find and Replace

// Find locates the first occurrence of needle in the active document.
// On a hit the cursor moves to the match, the match is selected, and
// the position is reported in the status message.
func (s *Session) Find(needle string) (buffer.ByteOffset, bool) {
	return s.findFrom(needle, 0)
}

// FindNext continues the search from the end of the current selection,
// or from the cursor when nothing is selected.
func (s *Session) FindNext(needle string) (buffer.ByteOffset, bool) {
	doc, ok := s.ActiveDocument()
	if !ok {
		return 0, false
	}

	start := doc.CursorOffset()
	if sel, ok := doc.Selection(); ok {
		start = sel.End
	}
	return s.findFrom(needle, start)
}

func (s *Session) findFrom(needle string, start buffer.ByteOffset) (buffer.ByteOffset, bool) {
	doc, ok := s.ActiveDocument()
	if !ok {
		return 0, false
	}

	off, err := doc.FindFrom(needle, start)
	if err != nil {
		s.SetStatus("Text not found")
		return 0, false
	}

	s.SetStatus(fmt.Sprintf("Found text at position %d", off))
	return off, true
}

// ReplaceSelected replaces the active document's selection with
// replacement when the selected text still equals needle, reporting
// the outcome in the status message.
func (s *Session) ReplaceSelected(needle, replacement string) error {
	doc, ok := s.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}

	err := doc.ReplaceSelected(needle, replacement)
	switch {
	case err == nil:
		s.SetStatus("Text replaced")
	case errors.Is(err, search.ErrNoSelection):
		s.SetStatus("No text selected")
	case errors.Is(err, search.ErrMismatch):
		s.SetStatus("Selected text doesn't match search text")
	}
	return err
}

// Settings

// ApplySettings adopts new global settings and propagates the
// presentation flags to every open document.
func (s *Session) ApplySettings(settings config.Settings) {
	s.settings = settings
	for _, doc := range s.docs.Documents() {
		doc.ApplySettings(settings)
	}
	s.logger.Debug("applied settings to %d documents", s.docs.Len())
}

// Settings returns the session's current settings.
func (s *Session) Settings() config.Settings {
	return s.settings
}

// RecentFiles returns the most-recently-used file list, newest first.
func (s *Session) RecentFiles() []string {
	return s.settings.RecentFiles
}

// Status

// SetStatus sets the status message and starts its expiry clock.
func (s *Session) SetStatus(message string) {
	s.status = message
	s.statusAt = s.now()
}

// StatusMessage returns the current status message, or false once it
// has expired.
func (s *Session) StatusMessage() (string, bool) {
	if s.status == "" {
		return "", false
	}
	if s.now().Sub(s.statusAt) >= StatusExpiry {
		s.status = ""
		return "", false
	}
	return s.status, true
}

// Auto-Save

// AutoSaveTick evaluates the auto-save gate against the given clock
// reading; the host calls it once per frame. When auto-save is enabled
// and the interval has elapsed, the active document is saved if it is
// modified and has a path. Returns whether a save happened. Auto-saves
// are silent: they log instead of overwriting the status message.
func (s *Session) AutoSaveTick(now time.Time) (bool, error) {
	if !s.settings.AutoSave {
		s.lastAutoSave = now
		return false, nil
	}
	if now.Sub(s.lastAutoSave) < s.settings.AutoSaveInterval() {
		return false, nil
	}
	s.lastAutoSave = now

	doc, ok := s.ActiveDocument()
	if !ok || !doc.IsModified() || doc.Path() == "" {
		return false, nil
	}

	if err := doc.Save(s.fsys); err != nil {
		s.logger.Error("auto-save %s: %v", doc.Path(), err)
		return false, err
	}
	s.logger.Debug("auto-saved %s", doc.Path())
	return true, nil
}

// Structure Views

// Outline lists the declaration lines of the active document.
func (s *Session) Outline() []outline.Entry {
	doc, ok := s.ActiveDocument()
	if !ok {
		return nil
	}
	return outline.Scan(doc.Text())
}

// DocumentMap returns the active document's miniature preview lines.
func (s *Session) DocumentMap(width int) []string {
	doc, ok := s.ActiveDocument()
	if !ok {
		return nil
	}
	return outline.Map(doc.Text(), width)
}

// ScrollToLine scrolls the active document's view to the given line.
func (s *Session) ScrollToLine(line int) (float64, error) {
	doc, ok := s.ActiveDocument()
	if !ok {
		return 0, ErrNoActiveDocument
	}
	return doc.View().ScrollToLine(line), nil
}
