// Package archive maintains the categorized bookmark file. The file is a
// loosely structured markdown document: categories are H2/H3 headings,
// entries are labeled paragraph blocks. Every mutation re-parses the raw
// lines, builds a new line sequence, and replaces the file atomically;
// lines outside the inserted region are preserved byte for byte.
package archive

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Entry is one archived bookmark.
type Entry struct {
	Category string
	Title    string
	URL      string
	Summary  string
}

// DocumentTitle seeds a brand-new archive file.
const DocumentTitle = "# Archived Bookmarks"

const (
	titleLabel   = "**Title:**"
	linkLabel    = "**Link:**"
	summaryLabel = "**Summary:**"
)

// DefaultMarkers decorate newly created category headings. The marker has
// no semantic meaning and is stripped before name comparison.
var DefaultMarkers = []string{"🧩", "🔧", "💡", "📚", "🧭", "✨"}

// RandomMarker picks a marker from DefaultMarkers.
func RandomMarker() string {
	return DefaultMarkers[rand.IntN(len(DefaultMarkers))]
}

// LineKind classifies a single document line.
type LineKind int

const (
	LineOther LineKind = iota
	LineBlank
	LineMajorHeading // "## "
	LineMinorHeading // "### "
	LineEntryStart   // "**Title:**"
)

// ClassifyLine is total: every line maps to exactly one kind.
func ClassifyLine(line string) LineKind {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return LineBlank
	case strings.HasPrefix(s, "### "):
		return LineMinorHeading
	case strings.HasPrefix(s, "## "):
		return LineMajorHeading
	case strings.HasPrefix(s, titleLabel):
		return LineEntryStart
	default:
		return LineOther
	}
}

func isHeading(k LineKind) bool {
	return k == LineMajorHeading || k == LineMinorHeading
}

// DisplayName derives a category name from a heading line: strip the
// heading markers, then split on the first whitespace run and keep the
// last part. This drops a single leading decorative marker when present;
// a heading without internal whitespace is its own name.
func DisplayName(line string) string {
	s := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		if rest := strings.TrimLeftFunc(s[i:], unicode.IsSpace); rest != "" {
			return rest
		}
	}
	return s
}

// ParseCategories returns the display name of every heading in document
// order. Duplicates are reported as-is.
func ParseCategories(lines []string) []string {
	var categories []string
	for _, line := range lines {
		if isHeading(ClassifyLine(line)) {
			categories = append(categories, DisplayName(line))
		}
	}
	return categories
}

func (e Entry) text() string {
	return fmt.Sprintf("%s %s\n\n%s %s\n\n%s %s", titleLabel, e.Title, linkLabel, e.URL, summaryLabel, e.Summary)
}

// InsertLines inserts an entry into the document and returns a new line
// sequence; the input is never modified. Lines keep their trailing
// newline, readlines-style, so unrelated content round-trips exactly.
//
// When the category heading exists, the entry is prepended above the
// category's first entry (newest first). The scan for that first entry
// stops at the next heading of either depth; a heading met first means
// the category is empty, and the entry is placed before the next major
// heading or end of document. An unknown category becomes a new
// minor-tier section at the end of the document.
func InsertLines(lines []string, e Entry, marker func() string) []string {
	if marker == nil {
		marker = RandomMarker
	}
	out := make([]string, len(lines))
	copy(out, lines)

	headingIdx := -1
	for i, line := range out {
		if isHeading(ClassifyLine(line)) && DisplayName(line) == e.Category {
			headingIdx = i
			break
		}
	}

	text := e.text()

	if headingIdx >= 0 {
		entryIdx := -1
	scan:
		for i := headingIdx + 1; i < len(out); i++ {
			switch ClassifyLine(out[i]) {
			case LineEntryStart:
				entryIdx = i
				break scan
			case LineMajorHeading, LineMinorHeading:
				break scan
			}
		}

		if entryIdx >= 0 {
			return insertAt(out, entryIdx, text+"\n\n---\n\n")
		}

		end := len(out)
		for i := headingIdx + 1; i < len(out); i++ {
			if ClassifyLine(out[i]) == LineMajorHeading {
				end = i
				break
			}
		}
		return insertAt(out, end, "\n"+text+"\n")
	}

	if n := len(out); n > 0 && !strings.HasSuffix(out[n-1], "\n") {
		out = append(out, "\n")
	}
	if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
		out = append(out, "\n")
	}
	return append(out,
		fmt.Sprintf("### %s %s\n", marker(), e.Category),
		"\n",
		text+"\n",
	)
}

func insertAt(lines []string, i int, elems ...string) []string {
	out := make([]string, 0, len(lines)+len(elems))
	out = append(out, lines[:i]...)
	out = append(out, elems...)
	return append(out, lines[i:]...)
}

// SplitLines splits raw document bytes into lines that keep their
// trailing newline. The final line may lack one.
func SplitLines(data string) []string {
	var lines []string
	for len(data) > 0 {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}

// Option configures a Store.
type Option func(*Store)

// WithMarkerFunc overrides the heading marker provider; tests use this
// to make output deterministic.
func WithMarkerFunc(f func() string) Option {
	return func(s *Store) { s.marker = f }
}

// Store reads and rewrites one archive file.
type Store struct {
	path   string
	marker func() string
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, marker: RandomMarker}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the archive file location.
func (s *Store) Path() string { return s.path }

// Categories parses the archive's category list. A missing file means
// no categories yet, not an error.
func (s *Store) Categories() ([]string, error) {
	lines, err := s.read()
	if err != nil {
		return nil, err
	}
	return ParseCategories(lines), nil
}

// Insert archives one entry: read, rewrite in memory, replace the file.
// The document is seeded with a title when it does not exist yet.
func (s *Store) Insert(e Entry) error {
	lines, err := s.read()
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []string{DocumentTitle + "\n", "\n"}
	}
	return s.write(InsertLines(lines, e, s.marker))
}

func (s *Store) read() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading archive %s: %w", s.path, err)
	}
	return SplitLines(string(data)), nil
}

// write replaces the archive atomically: the old content stays intact
// unless the rename succeeds.
func (s *Store) write(lines []string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".archive-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.WriteString(strings.Join(lines, "")); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replacing archive %s: %w", s.path, err)
	}
	return nil
}
