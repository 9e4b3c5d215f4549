package domain

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// fakeFS is an in-memory BookFSAdapter so walker logic can be tested
// without touching the disk.
type fakeFS struct {
	mu    sync.Mutex
	files map[string]string
	reads []string
}

func newFakeFS(files map[string]string) *fakeFS {
	return &fakeFS{files: files}
}

func (f *fakeFS) ReadFile(path m.Path) ([]byte, error) {
	f.mu.Lock()
	f.reads = append(f.reads, string(path))
	f.mu.Unlock()

	data, ok := f.files[string(path)]
	if !ok {
		return nil, os.ErrNotExist
	}

	return []byte(data), nil
}

func (f *fakeFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func (f *fakeFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

func newTestWorkflow(files map[string]string) (Workflow, *fakeFS) {
	fs := newFakeFS(files)

	return NewWorkflow(fs, NewScanner(DefaultEscape)), fs
}

func fixtureCSS() string {
	return strings.Join([]string{
		"@import start cool-css",
		".box { display:block; }",
		"@import end cool-css",
	}, "\n")
}

func TestResolveChapterBody(t *testing.T) {
	wf, fs := newTestWorkflow(map[string]string{
		"book/src/test-cases/tag-import/fixture.css": fixtureCSS(),
	})

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Tag Import",
		Content: "{{#import ./fixture.css@cool-css }}",
		Path:    "test-cases/tag-import/README.md",
	}}}}

	require.NoError(t, wf.Resolve(book, "book/src", 1))

	assert.Equal(t, ".box { display:block; }", book.Sections[0].Chapter.Content)
	assert.Equal(t, []string{"book/src/test-cases/tag-import/fixture.css"}, fs.reads)
}

func TestResolveEscapedDirectiveNeverReadsFile(t *testing.T) {
	// The referenced file does not exist; an escaped directive must not
	// even try to read it.
	wf, fs := newTestWorkflow(map[string]string{})

	body := "```\n/{{#import ./ignored.txt@foo-bar}}\n```\n"

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Escaped",
		Content: body,
		Path:    "escaped/README.md",
	}}}}

	require.NoError(t, wf.Resolve(book, "src", 1))

	assert.Equal(t, body, book.Sections[0].Chapter.Content)
	assert.Empty(t, fs.reads)
}

func TestResolveDeepChapterOnly(t *testing.T) {
	wf, _ := newTestWorkflow(map[string]string{
		"src/a/b/snippet.txt": "@import start deep\npayload\n@import end deep",
	})

	deepest := &m.Chapter{
		Name:    "Deepest",
		Content: "{{#import ./snippet.txt@deep}}",
		Path:    "a/b/deep.md",
	}
	middle := &m.Chapter{
		Name:     "Middle",
		Content:  "middle body",
		Path:     "a/middle.md",
		SubItems: []m.BookItem{{Chapter: deepest}},
	}
	top := &m.Chapter{
		Name:     "Top",
		Content:  "top body",
		Path:     "top.md",
		SubItems: []m.BookItem{{Chapter: middle}},
	}

	book := &m.Book{Sections: []m.BookItem{{Chapter: top}}}

	require.NoError(t, wf.Resolve(book, "src", 1))

	assert.Equal(t, "top body", top.Content)
	assert.Equal(t, "middle body", middle.Content)
	assert.Equal(t, "payload", deepest.Content)
}

func TestResolveDraftChapterUsesSrcDir(t *testing.T) {
	wf, fs := newTestWorkflow(map[string]string{
		"src/shared.txt": "@import start s\nshared\n@import end s",
	})

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Draft",
		Content: "{{#import shared.txt@s}}",
	}}}}

	require.NoError(t, wf.Resolve(book, "src", 1))

	assert.Equal(t, "shared", book.Sections[0].Chapter.Content)
	assert.Equal(t, []string{"src/shared.txt"}, fs.reads)
}

func TestResolveMissingFile(t *testing.T) {
	wf, _ := newTestWorkflow(map[string]string{})

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Broken",
		Content: "{{#import ./gone.txt@tag}}",
		Path:    "broken.md",
	}}}}

	err := wf.Resolve(book, "src", 1)

	require.Error(t, err)

	var dirErr *DirectiveError

	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, "Broken", dirErr.Chapter)
	assert.Equal(t, "{{#import ./gone.txt@tag}}", dirErr.Directive.Text)

	var notFound *FileNotFoundError

	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "src/gone.txt", string(notFound.Path))

	// The body must be left untouched on failure.
	assert.Equal(t, "{{#import ./gone.txt@tag}}", book.Sections[0].Chapter.Content)
}

func TestResolveMissingEndTag(t *testing.T) {
	wf, _ := newTestWorkflow(map[string]string{
		"src/half.txt": "@import start open\nnever closed\n",
	})

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Half",
		Content: "{{#import half.txt@open}}",
		Path:    "half.md",
	}}}}

	err := wf.Resolve(book, "src", 1)

	require.Error(t, err)

	var endErr *MissingEndTagError

	require.ErrorAs(t, err, &endErr)
	assert.Equal(t, "open", endErr.Tag)
}

func TestResolveParallelMatchesSequential(t *testing.T) {
	files := map[string]string{
		"src/a.txt": "@import start a\nalpha\n@import end a",
		"src/b.txt": "@import start b\nbeta\n@import end b",
		"src/c.txt": "@import start c\ngamma\n@import end c",
	}

	makeBook := func() *m.Book {
		return &m.Book{Sections: []m.BookItem{
			{Chapter: &m.Chapter{Name: "A", Content: "{{#import a.txt@a}}", Path: "a.md"}},
			{Separator: true},
			{Chapter: &m.Chapter{Name: "B", Content: "{{#import b.txt@b}}", Path: "b.md"}},
			{Chapter: &m.Chapter{Name: "C", Content: "{{#import c.txt@c}}", Path: "c.md"}},
		}}
	}

	sequential := makeBook()
	parallel := makeBook()

	wfSeq, _ := newTestWorkflow(files)
	wfPar, _ := newTestWorkflow(files)

	require.NoError(t, wfSeq.Resolve(sequential, "src", 1))
	require.NoError(t, wfPar.Resolve(parallel, "src", 4))

	assert.Equal(t, sequential, parallel)
	assert.Equal(t, "alpha", sequential.Sections[0].Chapter.Content)
	assert.Equal(t, "beta", sequential.Sections[2].Chapter.Content)
	assert.Equal(t, "gamma", sequential.Sections[3].Chapter.Content)
}

func TestInspectCollectsWithoutMutating(t *testing.T) {
	wf, fs := newTestWorkflow(map[string]string{})

	body := "{{#import a.txt@live}} /{{#import b.txt@escaped}}"

	book := &m.Book{Sections: []m.BookItem{{Chapter: &m.Chapter{
		Name:    "Mixed",
		Content: body,
		Path:    "mixed.md",
	}}}}

	resolutions, err := wf.Inspect(book)

	require.NoError(t, err)
	require.Len(t, resolutions, 2)

	assert.Equal(t, "Mixed", resolutions[0].Chapter)
	assert.Equal(t, "live", resolutions[0].Directive.Tag)
	assert.False(t, resolutions[0].Directive.Escaped)
	assert.Equal(t, "escaped", resolutions[1].Directive.Tag)
	assert.True(t, resolutions[1].Directive.Escaped)

	assert.Equal(t, body, book.Sections[0].Chapter.Content)
	assert.Empty(t, fs.reads)
}
