package adapter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	m "github.com/mouse-blink/bookimport/internal/model"
)

const (
	markdownExt = ".md"
	summaryFile = "SUMMARY.md"
	readmeFile  = "README.md"
)

// LoadBookDir builds a chapter tree straight from a directory of markdown
// files, so the standalone commands can run without a host process piping
// a book in. Files and directories are visited in lexical order; a nested
// directory becomes a chapter whose body is its README.md (empty when
// absent) and whose sub items are the remaining entries. SUMMARY.md is an
// index, not content, and is skipped.
func LoadBookDir(dir m.Path) (*m.Book, error) {
	info, err := os.Stat(string(dir))
	if err != nil {
		return nil, fmt.Errorf("book directory error: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	items, err := loadDir(string(dir), "")
	if err != nil {
		return nil, err
	}

	return &m.Book{Sections: items}, nil
}

func loadDir(root, rel string) ([]m.BookItem, error) {
	entries, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Join(root, rel), err)
	}

	var items []m.BookItem

	for _, entry := range entries {
		name := entry.Name()
		entryRel := filepath.Join(rel, name)

		if entry.IsDir() {
			chapter, err := loadDirChapter(root, entryRel)
			if err != nil {
				return nil, err
			}

			if chapter != nil {
				items = append(items, m.BookItem{Chapter: chapter})
			}

			continue
		}

		if filepath.Ext(name) != markdownExt || name == summaryFile || name == readmeFile {
			continue
		}

		chapter, err := loadFileChapter(root, entryRel)
		if err != nil {
			return nil, err
		}

		items = append(items, m.BookItem{Chapter: chapter})
	}

	return items, nil
}

// loadDirChapter turns a sub directory into a container chapter. A
// directory with no markdown anywhere below it yields no chapter at all.
func loadDirChapter(root, rel string) (*m.Chapter, error) {
	subItems, err := loadDir(root, rel)
	if err != nil {
		return nil, err
	}

	chapter := &m.Chapter{
		Name:     filepath.Base(rel),
		SubItems: subItems,
	}

	readmeRel := filepath.Join(rel, readmeFile)
	if data, err := os.ReadFile(filepath.Join(root, readmeRel)); err == nil {
		chapter.Content = string(data)
		chapter.Path = m.Path(readmeRel)

		if title := firstHeading(data); title != "" {
			chapter.Name = title
		}
	} else if len(subItems) == 0 {
		return nil, nil
	}

	return chapter, nil
}

func loadFileChapter(root, rel string) (*m.Chapter, error) {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	name := firstHeading(data)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(rel), markdownExt)
	}

	return &m.Chapter{
		Name:    name,
		Content: string(data),
		Path:    m.Path(rel),
	}, nil
}

// firstHeading returns the text of the first markdown heading in src,
// empty when there is none.
func firstHeading(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			return headingText(heading, src)
		}
	}

	return ""
}

// headingText collects the inline text of a heading node.
func headingText(n ast.Node, src []byte) string {
	var buf bytes.Buffer

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(headingText(c, src))
		}
	}

	return strings.TrimSpace(buf.String())
}
