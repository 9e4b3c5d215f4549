package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// PreprocessorContext carries the host settings handed to a preprocessor
// alongside the book: the book root, the parsed configuration, the
// renderer being negotiated for and the host version.
type PreprocessorContext struct {
	Root          m.Path     `json:"root"`
	Config        HostConfig `json:"config"`
	Renderer      string     `json:"renderer"`
	MdbookVersion string     `json:"mdbook_version"`
}

// HostConfig is the subset of the host configuration this tool reads.
type HostConfig struct {
	Book BookConfig `json:"book"`
}

// BookConfig locates the chapter sources under the book root.
type BookConfig struct {
	Src string `json:"src"`
}

// SrcDir returns the directory chapter paths are relative to. The host
// defaults the src setting to "src" when absent.
func (c *PreprocessorContext) SrcDir() m.Path {
	src := c.Config.Book.Src
	if src == "" {
		src = "src"
	}

	return m.Path(filepath.Join(string(c.Root), src))
}

// Wire shapes of the host protocol. Chapters, part titles and separators
// share one externally tagged enum slot, so the conversion cannot lean on
// struct tags alone.
type bookJSON struct {
	Sections      []bookItemJSON `json:"sections"`
	NonExhaustive *struct{}      `json:"__non_exhaustive"`
}

type chapterJSON struct {
	Name        string         `json:"name"`
	Content     string         `json:"content"`
	Number      []int          `json:"number"`
	SubItems    []bookItemJSON `json:"sub_items"`
	Path        *string        `json:"path"`
	SourcePath  *string        `json:"source_path"`
	ParentNames []string       `json:"parent_names"`
}

type bookItemJSON struct {
	Chapter   *chapterJSON
	PartTitle string
	Separator bool
}

// UnmarshalJSON accepts the three item encodings: the bare string
// "Separator", {"PartTitle": "..."} and {"Chapter": {...}}.
func (b *bookItemJSON) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}

		b.Separator = true

		return nil
	}

	var obj struct {
		Chapter   *chapterJSON `json:"Chapter"`
		PartTitle *string      `json:"PartTitle"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	switch {
	case obj.Chapter != nil:
		b.Chapter = obj.Chapter
	case obj.PartTitle != nil:
		b.PartTitle = *obj.PartTitle
	default:
		return fmt.Errorf("unknown book item %s", data)
	}

	return nil
}

// MarshalJSON emits the encoding expected by the host for each item kind.
func (b bookItemJSON) MarshalJSON() ([]byte, error) {
	switch {
	case b.Separator:
		return json.Marshal("Separator")
	case b.Chapter != nil:
		return json.Marshal(struct {
			Chapter *chapterJSON `json:"Chapter"`
		}{Chapter: b.Chapter})
	default:
		return json.Marshal(struct {
			PartTitle string `json:"PartTitle"`
		}{PartTitle: b.PartTitle})
	}
}

// ParseInput decodes the `[context, book]` pair a preprocessor receives on
// stdin and converts the book into the model tree.
func ParseInput(r io.Reader) (*PreprocessorContext, *m.Book, error) {
	var raw []json.RawMessage

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode preprocessor input: %w", err)
	}

	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("expected [context, book] input, got %d elements", len(raw))
	}

	var ctx PreprocessorContext
	if err := json.Unmarshal(raw[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to decode preprocessor context: %w", err)
	}

	var wire bookJSON
	if err := json.Unmarshal(raw[1], &wire); err != nil {
		return nil, nil, fmt.Errorf("failed to decode book: %w", err)
	}

	return &ctx, &m.Book{Sections: itemsFromWire(wire.Sections)}, nil
}

// WriteBook encodes the processed book back onto the host's stdout stream.
// Nothing but the book JSON may be written there.
func WriteBook(w io.Writer, book *m.Book) error {
	wire := bookJSON{Sections: itemsToWire(book.Sections)}
	if wire.Sections == nil {
		wire.Sections = []bookItemJSON{}
	}

	return json.NewEncoder(w).Encode(wire)
}

func itemsFromWire(items []bookItemJSON) []m.BookItem {
	out := make([]m.BookItem, 0, len(items))

	for _, item := range items {
		converted := m.BookItem{
			PartTitle: item.PartTitle,
			Separator: item.Separator,
		}

		if item.Chapter != nil {
			converted.Chapter = chapterFromWire(item.Chapter)
		}

		out = append(out, converted)
	}

	return out
}

func chapterFromWire(ch *chapterJSON) *m.Chapter {
	chapter := &m.Chapter{
		Name:        ch.Name,
		Content:     ch.Content,
		Number:      ch.Number,
		ParentNames: ch.ParentNames,
		SubItems:    itemsFromWire(ch.SubItems),
	}

	if ch.Path != nil {
		chapter.Path = m.Path(*ch.Path)
	}

	if ch.SourcePath != nil {
		chapter.SourcePath = m.Path(*ch.SourcePath)
	}

	return chapter
}

func itemsToWire(items []m.BookItem) []bookItemJSON {
	out := make([]bookItemJSON, 0, len(items))

	for _, item := range items {
		converted := bookItemJSON{
			PartTitle: item.PartTitle,
			Separator: item.Separator,
		}

		if item.Chapter != nil {
			converted.Chapter = chapterToWire(item.Chapter)
		}

		out = append(out, converted)
	}

	return out
}

func chapterToWire(ch *m.Chapter) *chapterJSON {
	wire := &chapterJSON{
		Name:        ch.Name,
		Content:     ch.Content,
		Number:      ch.Number,
		ParentNames: ch.ParentNames,
		SubItems:    itemsToWire(ch.SubItems),
	}

	if wire.ParentNames == nil {
		wire.ParentNames = []string{}
	}

	if ch.Path != "" {
		path := string(ch.Path)
		wire.Path = &path
	}

	if ch.SourcePath != "" {
		source := string(ch.SourcePath)
		wire.SourcePath = &source
	}

	return wire
}
