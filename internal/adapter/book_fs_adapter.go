// Package adapter contains the infrastructure adapters for the bookimport
// CLI: filesystem access, the mdBook stdin/stdout codec and the standalone
// book loader.
package adapter

import (
	"os"
	"path/filepath"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// BookFSAdapter abstracts the filesystem operations the resolution
// workflow relies on. It hides direct `os` access so the walker logic can
// be tested without touching the disk.
type BookFSAdapter interface {
	// ReadFile loads a referenced file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so callers can check existence
	// or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalBookFSAdapter is the concrete BookFSAdapter backed by the local
// filesystem.
type LocalBookFSAdapter struct{}

// NewLocalBookFSAdapter constructs a LocalBookFSAdapter ready to be wired
// into the workflow.
func NewLocalBookFSAdapter() *LocalBookFSAdapter {
	return &LocalBookFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalBookFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalBookFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalBookFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
