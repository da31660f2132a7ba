package archive

import "strings"

// Section is a read-only view of one category and its entries, used by
// the browse TUI and the categories command.
type Section struct {
	Name    string
	Level   int // 2 or 3
	Entries []ParsedEntry
}

// ParsedEntry is an entry block read back out of the document.
type ParsedEntry struct {
	Title   string
	Link    string
	Summary string
}

// ParseSections reads the archive into sections. Label lines outside any
// section (malformed documents) are ignored.
func ParseSections(lines []string) []Section {
	var sections []Section

	for _, line := range lines {
		s := strings.TrimSpace(line)
		switch ClassifyLine(line) {
		case LineMinorHeading:
			sections = append(sections, Section{Name: DisplayName(line), Level: 3})
		case LineMajorHeading:
			sections = append(sections, Section{Name: DisplayName(line), Level: 2})
		case LineEntryStart:
			if len(sections) == 0 {
				continue
			}
			cur := &sections[len(sections)-1]
			cur.Entries = append(cur.Entries, ParsedEntry{
				Title: strings.TrimSpace(strings.TrimPrefix(s, titleLabel)),
			})
		default:
			if len(sections) == 0 {
				continue
			}
			cur := &sections[len(sections)-1]
			if len(cur.Entries) == 0 {
				continue
			}
			entry := &cur.Entries[len(cur.Entries)-1]
			switch {
			case strings.HasPrefix(s, linkLabel):
				entry.Link = strings.TrimSpace(strings.TrimPrefix(s, linkLabel))
			case strings.HasPrefix(s, summaryLabel):
				entry.Summary = strings.TrimSpace(strings.TrimPrefix(s, summaryLabel))
			}
		}
	}
	return sections
}

// Sections loads and parses the archive file. A missing file yields no
// sections.
func (s *Store) Sections() ([]Section, error) {
	lines, err := s.read()
	if err != nil {
		return nil, err
	}
	return ParseSections(lines), nil
}
