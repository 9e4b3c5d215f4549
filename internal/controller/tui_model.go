package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chapterItem is one row of the chapter browser.
type chapterItem struct {
	name       string
	path       string
	content    string
	directives int
}

func (c chapterItem) FilterValue() string {
	return c.name + " " + c.path
}

// chapterDelegate renders chapter rows as a single line each.
type chapterDelegate struct{}

func (d chapterDelegate) Height() int  { return 1 }
func (d chapterDelegate) Spacing() int { return 0 }
func (d chapterDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d chapterDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	chapter, ok := item.(chapterItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var nameStyle, countStyle lipgloss.Style

	if isSelected {
		nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = nameStyle.Width(6).Align(lipgloss.Right)
	} else {
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right)
	}

	width := m.Width() - 8 // count column (6) + spacing (2)

	line := fmt.Sprintf("%s  %s",
		countStyle.Render(fmt.Sprintf("%d", chapter.directives)),
		nameStyle.Render(truncateToWidth(chapter.name, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

// truncateToWidth shortens text to the given display width, appending an
// ellipsis when it had to cut.
func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)

	currentWidth := 0

	result := make([]rune, 0, len(text))

	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// browseModel drives the interactive chapter browser: a filterable list of
// chapters and a scrollable preview of the selected chapter's resolved
// body.
type browseModel struct {
	width       int
	height      int
	chapterList list.Model
	preview     viewport.Model
	showPreview bool
	selected    chapterItem
}

func newBrowseModel(items []list.Item) browseModel {
	chapterList := list.New(items, chapterDelegate{}, 80, 20)
	chapterList.SetShowPagination(false)
	chapterList.SetShowFilter(true)
	chapterList.SetShowHelp(false)
	chapterList.SetShowTitle(false)
	chapterList.SetShowStatusBar(false)
	chapterList.FilterInput.Placeholder = "Filter by chapter…"

	return browseModel{
		chapterList: chapterList,
		preview:     viewport.New(80, 20),
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chapterList.SetWidth(m.width)
		m.chapterList.SetHeight(max(m.height-4, 1))
		m.preview.Width = m.width
		m.preview.Height = max(m.height-4, 1)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, cmd
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.showPreview {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.showPreview = false

			return m, nil
		default:
			m.preview, cmd = m.preview.Update(msg)

			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if m.chapterList.FilterState() == list.Filtering {
			break
		}

		if chapter, ok := m.chapterList.SelectedItem().(chapterItem); ok {
			m.selected = chapter
			m.preview.SetContent(chapter.content)
			m.preview.GotoTop()
			m.showPreview = true
		}

		return m, nil
	}

	m.chapterList, cmd = m.chapterList.Update(msg)

	return m, cmd
}

func (m browseModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	if m.showPreview {
		title := titleStyle.Render(truncateToWidth(m.selected.name, max(m.width-4, 0)))
		footer := footerStyle.Render("↑/k up • ↓/j down • esc back • q quit")

		return lipgloss.JoinVertical(lipgloss.Left, title, m.preview.View(), footer)
	}

	title := titleStyle.Render("📖 Chapters")
	footer := footerStyle.Render("↑/k up • ↓/j down • enter open • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.chapterList.View(), footer)
}
