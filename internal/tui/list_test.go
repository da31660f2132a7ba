package tui

import (
	"strings"
	"testing"

	"github.com/zhu327/bookmark/internal/archive"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this is far too long for the slot", 10, "this is..."},
		{"abc", 0, ""},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("", 10) != "" {
		t.Error("empty input should wrap to empty output")
	}
	if wrapText("untouched", 0) != "untouched" {
		t.Error("non-positive width should be a no-op")
	}
}

func TestFilterEntries(t *testing.T) {
	entries := []archive.ParsedEntry{
		{Title: "Kubernetes networking", Summary: "pods and services"},
		{Title: "Postgres tips", Summary: "indexes, vacuum"},
		{Title: "Go generics", Summary: "type parameters in practice"},
	}

	if got := filterEntries(entries, ""); len(got) != 3 {
		t.Errorf("empty query should keep all, got %d", len(got))
	}
	got := filterEntries(entries, "POSTGRES")
	if len(got) != 1 || got[0].Title != "Postgres tips" {
		t.Errorf("title match = %+v", got)
	}
	got = filterEntries(entries, "type parameters")
	if len(got) != 1 || got[0].Title != "Go generics" {
		t.Errorf("summary match = %+v", got)
	}
	if got := filterEntries(entries, "nomatch"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
