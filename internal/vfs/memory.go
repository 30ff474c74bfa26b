package vfs

import (
	"io/fs"
	"path"
	"sync"
	"time"
)

// MemFS implements FS using an in-memory file system. It is used in
// tests so document and settings round-trips never touch disk.
//
// MemFS is safe for concurrent use. Paths are POSIX-style; like the
// OS implementation, WriteFile requires the parent directory to
// exist.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true, ".": true},
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	f, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent modification.
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrInvalid}
	}
	if parent := path.Dir(filePath); !m.dirs[parent] {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// MkdirAll creates a directory and all parent directories.
func (m *MemFS) MkdirAll(dirPath string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath = path.Clean(dirPath)
	if _, ok := m.files[dirPath]; ok {
		return &fs.PathError{Op: "mkdir", Path: dirPath, Err: fs.ErrExist}
	}

	for p := dirPath; p != "/" && p != "."; p = path.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	if _, ok := m.files[filePath]; ok {
		return true
	}
	return m.dirs[filePath]
}
