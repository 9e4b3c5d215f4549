package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayDirectives prints a short per-chapter summary. The full listing
// is tabular output and reads better through the plain UI.
func (t *TUI) DisplayDirectives(resolutions []m.Resolution) error {
	perChapter := make(map[string]int)

	for _, res := range resolutions {
		perChapter[res.Chapter]++
	}

	_, err := fmt.Fprintf(t.output, "Found %d directive(s) across %d chapter(s)\n", len(resolutions), len(perChapter))

	return err
}

// DisplayCheckResult reports the dry run outcome or error.
func (t *TUI) DisplayCheckResult(chapters int, directives int, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "check failed: %v\n", err)

		return err
	}

	_, _ = fmt.Fprintf(t.output, "ok: %d directive(s) across %d chapter(s) resolve cleanly\n", directives, chapters)

	return nil
}

// Browse opens the interactive chapter browser over a resolved book.
// counts maps chapter names to the number of directives that were resolved
// in them.
func (t *TUI) Browse(book *m.Book, counts map[string]int) error {
	var items []list.Item

	err := book.WalkChapters(func(ch *m.Chapter) error {
		items = append(items, chapterItem{
			name:       ch.Name,
			path:       string(ch.Path),
			content:    ch.Content,
			directives: counts[ch.Name],
		})

		return nil
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(newBrowseModel(items), tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
