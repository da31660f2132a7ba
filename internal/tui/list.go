package tui

import (
	"strings"

	"github.com/zhu327/bookmark/internal/archive"
)

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// filterEntries keeps entries whose title or summary contains the query,
// case-insensitive. An empty query keeps everything.
func filterEntries(entries []archive.ParsedEntry, query string) []archive.ParsedEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	var out []archive.ParsedEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Summary), q) {
			out = append(out, e)
		}
	}
	return out
}

func renderListItem(e archive.ParsedEntry, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(e.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(e.Title, width-4))
	}
	link := "  " + itemLinkStyle.Render(truncateStr(e.Link, width-4))

	return title + "\n" + link
}

func renderList(entries []archive.ParsedEntry, cursor, height, width int) string {
	if len(entries) == 0 {
		return center("No entries", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(entries) {
		end = len(entries)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(entries[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func center(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
