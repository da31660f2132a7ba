package ledger

import (
	"path/filepath"
	"testing"
	"time"
)

func testLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("opening test ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestMarkAndSeen(t *testing.T) {
	l, _ := testLedger(t)

	seen, err := l.Seen("http://a")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if seen {
		t.Error("fresh ledger should not know http://a")
	}

	if err := l.Mark(Record{URL: "http://a", Title: "A", Category: "Tech"}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	seen, err = l.Seen("http://a")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if !seen {
		t.Error("marked URL should be seen")
	}
}

func TestMarkIsUpsert(t *testing.T) {
	l, _ := testLedger(t)

	if err := l.Mark(Record{URL: "http://a", Title: "A", Category: "Tech"}); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := l.Mark(Record{URL: "http://a", Title: "A2", Category: "AI Tools"}); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	records, err := l.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Title != "A2" || records[0].Category != "AI Tools" {
		t.Errorf("record not updated: %+v", records[0])
	}
}

func TestRecentOrder(t *testing.T) {
	l, _ := testLedger(t)
	now := time.Now()

	for i, url := range []string{"http://old", "http://mid", "http://new"} {
		r := Record{URL: url, Title: url, Category: "Tech", ArchivedAt: now.Add(time.Duration(i) * time.Hour)}
		if err := l.Mark(r); err != nil {
			t.Fatalf("mark %s: %v", url, err)
		}
	}

	records, err := l.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].URL != "http://new" || records[1].URL != "http://mid" {
		t.Errorf("order wrong: %+v", records)
	}
}

func TestPrune(t *testing.T) {
	l, _ := testLedger(t)
	now := time.Now()

	l.Mark(Record{URL: "http://old", Title: "old", Category: "Tech", ArchivedAt: now.Add(-48 * time.Hour)})
	l.Mark(Record{URL: "http://new", Title: "new", Category: "Tech", ArchivedAt: now})

	deleted, err := l.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	seen, _ := l.Seen("http://old")
	if seen {
		t.Error("pruned record still present")
	}
	seen, _ = l.Seen("http://new")
	if !seen {
		t.Error("recent record lost")
	}
}

func TestStats(t *testing.T) {
	l, path := testLedger(t)
	l.Mark(Record{URL: "http://a", Title: "A", Category: "Tech"})

	count, size, err := l.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d", count)
	}
	if size <= 0 {
		t.Errorf("size = %d", size)
	}
}
