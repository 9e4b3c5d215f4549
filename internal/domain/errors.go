package domain

import (
	"fmt"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// FileNotFoundError reports a directive whose referenced file could not be
// read from the chapter directory.
type FileNotFoundError struct {
	Path m.Path
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("referenced file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// InvalidEncodingError reports a referenced file that is not valid UTF-8.
type InvalidEncodingError struct {
	Path m.Path
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("referenced file is not valid UTF-8: %s", e.Path)
}

// MissingStartTagError reports a file with no start marker for the tag.
type MissingStartTagError struct {
	Path m.Path
	Tag  string
}

func (e *MissingStartTagError) Error() string {
	return fmt.Sprintf("%s: missing marker line `%s start %s`", e.Path, markerKeyword, e.Tag)
}

// MissingEndTagError reports a file with no end marker for the tag.
type MissingEndTagError struct {
	Path m.Path
	Tag  string
}

func (e *MissingEndTagError) Error() string {
	return fmt.Sprintf("%s: missing marker line `%s end %s`", e.Path, markerKeyword, e.Tag)
}

// InvertedTagOrderError reports a file whose end marker precedes its start
// marker.
type InvertedTagOrderError struct {
	Path m.Path
	Tag  string
}

func (e *InvertedTagOrderError) Error() string {
	return fmt.Sprintf("%s: `%s end %s` appears before `%s start %s`", e.Path, markerKeyword, e.Tag, markerKeyword, e.Tag)
}

// DirectiveError wraps an extraction failure with the location needed to
// point the author at the offending directive.
type DirectiveError struct {
	Chapter   string
	Directive m.Directive
	Err       error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("chapter %q: cannot resolve %q: %v", e.Chapter, e.Directive.Text, e.Err)
}

func (e *DirectiveError) Unwrap() error { return e.Err }
