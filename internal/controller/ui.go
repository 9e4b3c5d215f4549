// Package controller provides output controllers for presenting directive
// listings and resolved chapters.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// UI defines the interface for presenting scan results. Implementations
// can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayDirectives shows the directives discovered across the book.
	DisplayDirectives(resolutions []m.Resolution) error

	// DisplayCheckResult reports the outcome of a dry run resolution.
	DisplayCheckResult(chapters int, directives int, err error) error
}

// NewUI creates a UI based on whether TTY mode is enabled. A terminal gets
// the interactive browser, a pipe gets plain text.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY). Returns false if
// the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
