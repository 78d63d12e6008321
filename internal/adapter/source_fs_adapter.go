// Package adapter contains filesystem and persistence adapters for the
// unwrapaudit CLI.
package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning source trees. It intentionally hides direct
// `os` access so the enumerator and workflow can be tested without touching
// the disk.
type SourceFSAdapter interface {
	// Walk traverses the provided root path recursively.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadLines loads a file from disk and returns its lines, without
	// line terminators, 0-indexed (reporting adds 1).
	ReadLines(path m.Path) ([]string, error)

	// FileInfo returns metadata for a path so the domain can check
	// existence before starting a traversal.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the local
// filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over all files and directories under root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadLines loads file contents from disk and splits them into lines. A
// trailing newline does not produce an extra empty line, matching the line
// count a text editor would show.
func (a *LocalSourceFSAdapter) ReadLines(path m.Path) ([]string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
