// Package syntax resolves file extensions to language labels.
//
// The label is opaque to the rest of the core: it is stored on a
// document once at load time and handed unchanged to whatever
// highlighting engine the host embeds. Renames do not re-resolve.
package syntax

import (
	"path/filepath"
	"strings"
)

// Resolve returns the language label for a file path's extension.
// Unknown or missing extensions report false.
func Resolve(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".go":
		return "Go", true
	case ".rs":
		return "Rust", true
	case ".py":
		return "Python", true
	case ".js", ".jsx":
		return "JavaScript", true
	case ".ts", ".tsx":
		return "TypeScript", true
	case ".rb":
		return "Ruby", true
	case ".java":
		return "Java", true
	case ".c":
		return "C", true
	case ".cpp", ".cc", ".cxx":
		return "C++", true
	case ".h", ".hpp":
		return "C++", true
	case ".cs":
		return "C#", true
	case ".php":
		return "PHP", true
	case ".md", ".markdown":
		return "Markdown", true
	case ".toml":
		return "TOML", true
	case ".json":
		return "JSON", true
	case ".yaml", ".yml":
		return "YAML", true
	case ".html", ".htm":
		return "HTML", true
	case ".css":
		return "CSS", true
	case ".sh", ".bash":
		return "Shell", true
	case ".sql":
		return "SQL", true
	case ".xml":
		return "XML", true
	case ".txt":
		return "Plain Text", true
	default:
		return "", false
	}
}
