// Package config owns the editor's persisted settings: the TOML file
// they live in, their defaults, and a watcher that feeds external
// edits of that file back into a running session.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/plumetext/plume/internal/vfs"
)

const (
	// FileName is the settings file name inside the config directory.
	FileName = "config.toml"

	// MaxRecentFiles caps the most-recently-used file list.
	MaxRecentFiles = 10
)

// Settings holds the editor's persisted configuration.
type Settings struct {
	ThemeName            string   `toml:"theme_name"`
	FontSize             float64  `toml:"font_size"`
	WordWrap             bool     `toml:"word_wrap"`
	LineNumbers          bool     `toml:"line_numbers"`
	SyntaxHighlighting   bool     `toml:"syntax_highlighting"`
	AutoSave             bool     `toml:"auto_save"`
	AutoSaveIntervalSecs int64    `toml:"auto_save_interval_secs"`
	RecentFiles          []string `toml:"recent_files"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		ThemeName:            "Light",
		FontSize:             14,
		WordWrap:             true,
		LineNumbers:          true,
		SyntaxHighlighting:   true,
		AutoSave:             false,
		AutoSaveIntervalSecs: 60,
	}
}

// AutoSaveInterval returns the auto-save interval as a Duration.
func (s Settings) AutoSaveInterval() time.Duration {
	return time.Duration(s.AutoSaveIntervalSecs) * time.Second
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", s.FontSize)
	}
	if s.AutoSaveIntervalSecs <= 0 {
		return fmt.Errorf("auto_save_interval_secs must be positive, got %d", s.AutoSaveIntervalSecs)
	}
	return nil
}

// AddRecentFile pushes path onto the front of the recent-files list,
// removing any earlier occurrence and capping the list at
// MaxRecentFiles.
func (s *Settings) AddRecentFile(path string) {
	kept := make([]string, 0, len(s.RecentFiles)+1)
	kept = append(kept, path)
	for _, p := range s.RecentFiles {
		if p != path {
			kept = append(kept, p)
		}
	}
	if len(kept) > MaxRecentFiles {
		kept = kept[:MaxRecentFiles]
	}
	s.RecentFiles = kept
}

// Store reads and writes settings at a fixed path through a file
// system.
type Store struct {
	fs   vfs.FS
	path string
}

// NewStore creates a store for the given path.
func NewStore(fsys vfs.FS, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the file path the store persists to.
func (st *Store) Path() string {
	return st.path
}

// Load reads settings from the store's path. When the file does not
// exist yet, defaults are written back so a fresh install has a
// config file to edit. Missing keys keep their default values.
func (st *Store) Load() (Settings, error) {
	if !st.fs.Exists(st.path) {
		s := Default()
		if err := st.Save(s); err != nil {
			return s, err
		}
		return s, nil
	}

	data, err := st.fs.ReadFile(st.path)
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", st.path, err)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", st.path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", st.path, err)
	}
	if len(s.RecentFiles) > MaxRecentFiles {
		s.RecentFiles = s.RecentFiles[:MaxRecentFiles]
	}

	return s, nil
}

// Save writes settings to the store's path, creating the parent
// directory if needed.
func (st *Store) Save(s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(st.path); dir != "." && dir != "/" {
		if err := st.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	if err := st.fs.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", st.path, err)
	}

	return nil
}

// DefaultPath returns the per-user location of the settings file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "plume", FileName), nil
}
