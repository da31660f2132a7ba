// Package ledger records which URLs have already been archived, so a
// rerun over the same diff does not duplicate entries.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one archived link.
type Record struct {
	URL        string
	Title      string
	Category   string
	ArchivedAt time.Time
}

type Ledger struct {
	db *sql.DB
}

func Open(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db}
	if err := l.init(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) init() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS archived_links (
			url         TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			category    TEXT NOT NULL,
			archived_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_archived_links_at ON archived_links(archived_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Mark records a link as archived. Re-marking an existing URL refreshes
// its title, category and timestamp.
func (l *Ledger) Mark(r Record) error {
	at := r.ArchivedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := l.db.Exec(`
		INSERT INTO archived_links (url, title, category, archived_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			archived_at = excluded.archived_at
	`, r.URL, r.Title, r.Category, at)
	if err != nil {
		return fmt.Errorf("marking %s: %w", r.URL, err)
	}
	return nil
}

// Seen reports whether the URL was archived before.
func (l *Ledger) Seen(url string) (bool, error) {
	var one int
	err := l.db.QueryRow("SELECT 1 FROM archived_links WHERE url = ?", url).Scan(&one)
	switch err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, fmt.Errorf("querying %s: %w", url, err)
	}
}

// Recent returns the most recently archived links, newest first.
func (l *Ledger) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(`
		SELECT url, title, category, archived_at FROM archived_links
		ORDER BY archived_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent links: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.URL, &r.Title, &r.Category, &r.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes records older than the retention window and returns the
// number removed.
func (l *Ledger) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := l.db.Exec("DELETE FROM archived_links WHERE archived_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the record count and on-disk size of the ledger.
func (l *Ledger) Stats(dbPath string) (count int64, size int64, err error) {
	if err := l.db.QueryRow("SELECT COUNT(*) FROM archived_links").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting records: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return count, info.Size(), nil
}
