// Package model defines the data structures for book import resolution.
package model

// Path represents a file system path.
type Path string

// Chapter is a single content-bearing node in the book tree. Import
// resolution rewrites Content and nothing else; every other field is
// carried through untouched so the book can be handed back to the host.
type Chapter struct {
	// Name is the human readable chapter title, e.g. "Getting Started".
	Name string
	// Content is the raw markdown body that directives are resolved in.
	Content string
	// Number is the section number assigned by the host ([1,2] -> "1.2.").
	// Draft and prefix chapters have none.
	Number []int
	// Path locates the chapter source file relative to the book src
	// directory. Empty for draft chapters.
	Path Path
	// SourcePath is the path the chapter was originally loaded from.
	SourcePath Path
	// ParentNames lists the titles of the enclosing chapters, outermost
	// first.
	ParentNames []string
	// SubItems are the nested book items, in reading order.
	SubItems []BookItem
}

// BookItem is one entry of a book section list: a chapter, a part title,
// or a separator. Exactly one of the fields is meaningful.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// Book is the tree of items the host hands over for processing.
type Book struct {
	Sections []BookItem
}

// WalkChapters calls fn for every chapter of the book in pre-order.
// Traversal stops at the first error.
func (b *Book) WalkChapters(fn func(*Chapter) error) error {
	return walkItems(b.Sections, fn)
}

func walkItems(items []BookItem, fn func(*Chapter) error) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}

		if err := fn(ch); err != nil {
			return err
		}

		if err := walkItems(ch.SubItems, fn); err != nil {
			return err
		}
	}

	return nil
}
