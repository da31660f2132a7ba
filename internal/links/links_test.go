package links

import "testing"

func TestExtractAddedOrder(t *testing.T) {
	diff := `diff --git a/README.md b/README.md
--- a/README.md
+++ b/README.md
@@ -1,3 +1,6 @@
 [kept](http://kept)
-[removed](http://removed)
+[first](http://one)
+[second](http://two)
-[also removed](http://gone)
+[third](http://three)
`
	got := ExtractAdded(diff)
	if len(got) != 3 {
		t.Fatalf("expected 3 links, got %d: %v", len(got), got)
	}
	want := []Link{
		{Title: "first", URL: "http://one"},
		{Title: "second", URL: "http://two"},
		{Title: "third", URL: "http://three"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExtractAddedMultipleLinksPerLine(t *testing.T) {
	diff := "+- [a](http://a) and [b](http://b)\n"
	got := ExtractAdded(diff)
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %v", got)
	}
	if got[0].Title != "a" || got[1].Title != "b" {
		t.Errorf("left-to-right order broken: %v", got)
	}
}

func TestExtractAddedSkipsFileHeader(t *testing.T) {
	diff := "+++ b/[not a link](http://header)\n"
	if got := ExtractAdded(diff); len(got) != 0 {
		t.Errorf("file header treated as addition: %v", got)
	}
}

func TestExtractAddedTrimsFields(t *testing.T) {
	diff := "+[  padded title ]( http://padded )\n"
	got := ExtractAdded(diff)
	if len(got) != 1 {
		t.Fatalf("expected 1 link, got %v", got)
	}
	if got[0].Title != "padded title" || got[0].URL != "http://padded" {
		t.Errorf("fields not trimmed: %+v", got[0])
	}
}

func TestExtractAddedEmptyInput(t *testing.T) {
	if got := ExtractAdded(""); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
	if got := ExtractAdded(" [context](http://c)\n-[removed](http://r)\n"); len(got) != 0 {
		t.Errorf("non-added lines must be ignored, got %v", got)
	}
}
