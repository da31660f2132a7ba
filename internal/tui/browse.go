// Package tui renders the archive file as a browsable two-pane view:
// category tabs, entry list, and a summary preview.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhu327/bookmark/internal/archive"
	"github.com/zhu327/bookmark/internal/browser"
)

// Run opens the browse view over the archive at path.
func Run(path string) error {
	store := archive.NewStore(path)
	sections, err := store.Sections()
	if err != nil {
		return err
	}

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 80

	m := model{
		path:     path,
		sections: sections,
		search:   search,
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type model struct {
	path     string
	sections []archive.Section
	catIdx   int
	cursor   int

	search    textinput.Model
	searching bool
	query     string

	status string
	width  int
	height int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) entries() []archive.ParsedEntry {
	if len(m.sections) == 0 {
		return nil
	}
	return filterEntries(m.sections[m.catIdx].Entries, m.query)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.query = m.search.Value()
				m.cursor = 0
			case "esc":
				m.searching = false
				m.search.SetValue("")
				m.query = ""
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
		case "left", "h", "shift+tab":
			if len(m.sections) > 0 {
				m.catIdx = (m.catIdx + len(m.sections) - 1) % len(m.sections)
				m.cursor = 0
			}
		case "right", "l", "tab":
			if len(m.sections) > 0 {
				m.catIdx = (m.catIdx + 1) % len(m.sections)
				m.cursor = 0
			}
		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case "esc":
			m.search.SetValue("")
			m.query = ""
			m.cursor = 0
		case "enter", "o":
			entries := m.entries()
			if m.cursor < len(entries) {
				if err := browser.Open(entries[m.cursor].Link); err != nil {
					m.status = fmt.Sprintf("open failed: %v", err)
				} else {
					m.status = "opened " + entries[m.cursor].Link
				}
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if len(m.sections) == 0 {
		return center(fmt.Sprintf("Archive %s has no categories yet", m.path), m.width, m.height)
	}

	header := headerStyle.Render("bookmark") + " " + m.renderTabs()

	listWidth := m.width * 2 / 5
	previewWidth := m.width - listWidth - 4
	paneHeight := m.height - 5

	entries := m.entries()
	list := listPaneStyle.Width(listWidth).Height(paneHeight).Render(
		renderList(entries, m.cursor, paneHeight, listWidth),
	)

	var selected *archive.ParsedEntry
	if m.cursor < len(entries) {
		selected = &entries[m.cursor]
	}
	preview := listPaneStyle.Width(previewWidth).Height(paneHeight).Render(
		renderPreview(selected, m.sections[m.catIdx].Name, previewWidth-2, paneHeight),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	return lipgloss.JoinVertical(lipgloss.Left, header, panes, m.renderStatus(len(entries)))
}

func (m model) renderTabs() string {
	var tabs []string
	for i, s := range m.sections {
		label := truncateStr(s.Name, 20)
		if i == m.catIdx {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m model) renderStatus(count int) string {
	if m.searching {
		return statusBarStyle.Width(m.width).Render(searchPromptStyle.Render("/") + m.search.View())
	}
	status := fmt.Sprintf("%d entries · ↑↓ navigate · ←→ category · / search · enter open · q quit", count)
	if m.query != "" {
		status = fmt.Sprintf("filter %q · %s", m.query, status)
	}
	if m.status != "" {
		status = m.status + " · " + status
	}
	return statusBarStyle.Width(m.width).Render(status)
}

func renderPreview(e *archive.ParsedEntry, category string, width, height int) string {
	if e == nil {
		return center("Select an entry", width, height)
	}
	if width < 10 {
		width = 10
	}

	title := previewTitleStyle.Width(width).Render(e.Title)
	cat := previewCategoryStyle.Render(category)

	summary := e.Summary
	if summary == "" {
		summary = "(No summary recorded)"
	}
	body := previewBodyStyle.Width(width).Render(wrapText(summary, width))
	link := previewLinkStyle.Width(width).Render("Link: " + e.Link)

	content := lipgloss.JoinVertical(lipgloss.Left, title, cat, "", body, "", link)

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
