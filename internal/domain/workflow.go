package domain

import (
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/bookimport/internal/adapter"
	m "github.com/mouse-blink/bookimport/internal/model"
)

// Workflow defines the interface for book import operations.
type Workflow interface {
	// Resolve rewrites every chapter body of book in place, replacing each
	// live directive with the tagged region it references. srcDir is the
	// directory chapter paths are relative to. The first unresolvable
	// directive aborts the whole run; the book must then be discarded.
	Resolve(book *m.Book, srcDir m.Path, threads int) error

	// Inspect scans every chapter body and reports the directives found,
	// escaped ones included, without reading any referenced file and
	// without mutating the book.
	Inspect(book *m.Book) ([]m.Resolution, error)
}

type workflow struct {
	fs      adapter.BookFSAdapter
	scanner *Scanner
}

// NewWorkflow creates a Workflow using the provided filesystem adapter and
// scanner.
func NewWorkflow(fs adapter.BookFSAdapter, scanner *Scanner) Workflow {
	return &workflow{fs: fs, scanner: scanner}
}

// Resolve processes the top level sections of the book. With threads > 1
// the sections are resolved concurrently: chapter subtrees share no state
// and the referenced files are only read, so the result is identical to a
// sequential run up to error ordering. A single thread keeps the
// deterministic pre-order.
func (w *workflow) Resolve(book *m.Book, srcDir m.Path, threads int) error {
	if threads <= 1 {
		for i := range book.Sections {
			if err := w.resolveItem(&book.Sections[i], srcDir); err != nil {
				return err
			}
		}

		return nil
	}

	var g errgroup.Group

	g.SetLimit(threads)

	for i := range book.Sections {
		item := &book.Sections[i]

		g.Go(func() error {
			return w.resolveItem(item, srcDir)
		})
	}

	return g.Wait()
}

// resolveItem rewrites one book item and all of its descendants.
func (w *workflow) resolveItem(item *m.BookItem, srcDir m.Path) error {
	ch := item.Chapter
	if ch == nil {
		return nil
	}

	slog.Debug("resolving chapter", "chapter", ch.Name, "path", ch.Path)

	if err := w.resolveChapter(ch, srcDir); err != nil {
		return err
	}

	for i := range ch.SubItems {
		if err := w.resolveItem(&ch.SubItems[i], srcDir); err != nil {
			return err
		}
	}

	return nil
}

// resolveChapter runs one scan/extract/substitute cycle over the chapter
// body. Resolved text is not re-scanned, so an import can never expand
// recursively.
func (w *workflow) resolveChapter(ch *m.Chapter, srcDir m.Path) error {
	directives := w.scanner.Scan(ch.Content)
	if len(directives) == 0 {
		return nil
	}

	// Draft chapters have no path and resolve against srcDir itself.
	dir := w.fs.JoinPath(string(srcDir), filepath.Dir(string(ch.Path)))

	resolved := make(map[int]string, len(directives))

	for _, d := range directives {
		if d.Escaped {
			continue
		}

		path := w.fs.JoinPath(string(dir), string(d.File))

		data, err := w.fs.ReadFile(path)
		if err != nil {
			return &DirectiveError{
				Chapter:   ch.Name,
				Directive: d,
				Err:       &FileNotFoundError{Path: path, Err: err},
			}
		}

		content, err := Extract(path, data, d.Tag)
		if err != nil {
			return &DirectiveError{Chapter: ch.Name, Directive: d, Err: err}
		}

		resolved[d.Start] = content
	}

	ch.Content = Substitute(ch.Content, directives, resolved)

	return nil
}

// Inspect walks the book in pre-order and collects every directive
// occurrence per chapter.
func (w *workflow) Inspect(book *m.Book) ([]m.Resolution, error) {
	var resolutions []m.Resolution

	err := book.WalkChapters(func(ch *m.Chapter) error {
		for _, d := range w.scanner.Scan(ch.Content) {
			resolutions = append(resolutions, m.Resolution{
				Chapter:   ch.Name,
				Directive: d,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolutions, nil
}
