// Package links extracts markdown links from diff text.
package links

import (
	"regexp"
	"strings"
)

// Link is one extracted (title, url) pair. Not persisted.
type Link struct {
	Title string
	URL   string
}

var linkPattern = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)

// ExtractAdded returns the links found on added diff lines, in order.
// Only lines prefixed with a single "+" count; the "+++" file header is
// not an addition. A line may carry any number of links.
func ExtractAdded(diff string) []Link {
	var out []Link
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		content := strings.TrimSpace(line[1:])
		for _, m := range linkPattern.FindAllStringSubmatch(content, -1) {
			out = append(out, Link{
				Title: strings.TrimSpace(m[1]),
				URL:   strings.TrimSpace(m[2]),
			})
		}
	}
	return out
}
