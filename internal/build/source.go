// Package build drives parsing across many source files: it loads
// sources, fans independent parser instances out over them, and
// collects per-file results for downstream consumers.
package build

import (
	"os"
	"path/filepath"
	"strings"
)

// Source is one input file queued for parsing. Followed marks sources
// discovered through imports rather than named on the command line.
type Source struct {
	Path     string
	Module   string
	Content  string
	Followed bool
}

// NewSource reads a file from disk and derives its module name.
func NewSource(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{
		Path:    path,
		Module:  ModuleName(path),
		Content: string(content),
	}, nil
}

// ModuleName derives a dotted module name from a file path. An
// __init__ file takes the name of its package directory.
func ModuleName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "__init__" {
		return filepath.Base(filepath.Dir(path))
	}
	return name
}

// IsSourceFile reports whether a path names a parseable source file.
func IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".py" || ext == ".pyi"
}
