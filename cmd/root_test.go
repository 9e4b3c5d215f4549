package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBookFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, rel)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// preprocessorInput builds the [context, book] JSON a host would pipe in.
func preprocessorInput(t *testing.T, root, chapterPath, content string) string {
	t.Helper()

	input := []any{
		map[string]any{
			"root":           root,
			"config":         map[string]any{"book": map[string]any{"src": "src"}},
			"renderer":       "html",
			"mdbook_version": "0.4.40",
		},
		map[string]any{
			"sections": []any{
				map[string]any{
					"Chapter": map[string]any{
						"name":         "Tag Import",
						"content":      content,
						"number":       []int{1},
						"sub_items":    []any{},
						"path":         chapterPath,
						"source_path":  chapterPath,
						"parent_names": []string{},
					},
				},
			},
			"__non_exhaustive": nil,
		},
	}

	data, err := json.Marshal(input)
	require.NoError(t, err)

	return string(data)
}

func decodeChapterContent(t *testing.T, output string) string {
	t.Helper()

	var book struct {
		Sections []struct {
			Chapter struct {
				Content string `json:"content"`
			} `json:"Chapter"`
		} `json:"sections"`
	}

	require.NoError(t, json.Unmarshal([]byte(output), &book))
	require.Len(t, book.Sections, 1)

	return book.Sections[0].Chapter.Content
}

func TestRootCmd_Preprocess(t *testing.T) {
	root := t.TempDir()

	writeBookFile(t, root, "src/fixture.css",
		"@import start cool-css\n.box { display:block; }\n@import end cool-css\n")

	input := preprocessorInput(t, root, "README.md", "{{#import ./fixture.css@cool-css }}")

	var out bytes.Buffer

	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, ".box { display:block; }", decodeChapterContent(t, out.String()))
}

func TestRootCmd_PreprocessEscapedOnly(t *testing.T) {
	root := t.TempDir()

	// ignored.txt deliberately does not exist.
	body := "```\n/{{#import ./ignored.txt@foo-bar}}\n```\n"
	input := preprocessorInput(t, root, "README.md", body)

	var out bytes.Buffer

	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, body, decodeChapterContent(t, out.String()))
}

func TestRootCmd_PreprocessFailsOnMissingFile(t *testing.T) {
	root := t.TempDir()

	input := preprocessorInput(t, root, "README.md", "{{#import ./gone.txt@tag}}")

	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tag Import")
	assert.Contains(t, err.Error(), "gone.txt")
}

func TestSupportsCmd(t *testing.T) {
	for _, renderer := range []string{"html", "epub", "anything"} {
		rootCmd.SetIn(strings.NewReader(""))
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"supports", renderer})

		assert.NoError(t, rootCmd.Execute(), "renderer %s", renderer)
	}
}
