// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a local SQLite history of download requests.
// The history is append-only and is never consulted to decide whether a
// download is needed.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

const defaultMaxResults = 20

// DefaultPath returns $XDG_DATA_HOME/kaggle-fetch/history.db.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "kaggle-fetch", "history.db")
}

// Ledger wraps the history database.
type Ledger struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the database at cfg.Path (DefaultPath when empty)
// and ensures the schema exists.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	l := &Ledger{db: db, maxResults: maxResults}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset TEXT NOT NULL,
			file TEXT NOT NULL,
			path TEXT NOT NULL,
			source_url TEXT,
			bytes INTEGER NOT NULL DEFAULT 0,
			sha256 TEXT,
			mime_type TEXT,
			skipped INTEGER NOT NULL DEFAULT 0,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_dataset ON downloads(dataset)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends rec and sets rec.ID. A zero rec.At is stamped with the
// current time.
func (l *Ledger) Record(ctx context.Context, rec *types.DownloadRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO downloads (dataset, file, path, source_url, bytes, sha256, mime_type, skipped, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Dataset, rec.File, rec.Path, rec.SourceURL, rec.Bytes, rec.SHA256, rec.MIMEType,
		rec.Skipped, rec.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording download of %s: %w", rec.File, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading ledger id: %w", err)
	}
	rec.ID = id
	return nil
}

// List returns up to limit records, newest first. A limit of zero or less
// uses the configured default.
func (l *Ledger) List(ctx context.Context, limit int) ([]types.DownloadRecord, error) {
	if limit <= 0 {
		limit = l.maxResults
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, dataset, file, path, source_url, bytes, sha256, mime_type, skipped, at
		 FROM downloads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var out []types.DownloadRecord
	for rows.Next() {
		var (
			rec                   types.DownloadRecord
			sourceURL, sum, mtype sql.NullString
			at                    string
		)
		if err := rows.Scan(&rec.ID, &rec.Dataset, &rec.File, &rec.Path, &sourceURL,
			&rec.Bytes, &sum, &mtype, &rec.Skipped, &at); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		rec.SourceURL = sourceURL.String
		rec.SHA256 = sum.String
		rec.MIMEType = mtype.String
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			rec.At = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
