// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive maintains a SQLite catalog of exported article records
// with full-text search over titles and summaries. The catalog accumulates
// across runs, so past exports stay queryable offline.
// See docs/ARCHITECTURE § Archive.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// Store manages the article catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog at cfg.Path, creating the schema on
// first use.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			title TEXT,
			author TEXT,
			published TEXT,
			tags TEXT,
			reading_time TEXT,
			summary TEXT,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, summary, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
				INSERT INTO articles_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Failed  int
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Failed
}

// Ingest upserts article records into the catalog, printing per-record
// status. Existing URLs are updated in place; the whole batch commits in
// one transaction.
func (s *Store) Ingest(ctx context.Context, articles []types.Article, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range articles {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM articles WHERE url = ?`, a.URL,
		).Scan(&exists)
		if err != nil {
			return summary, fmt.Errorf("checking %s: %w", a.URL, err)
		}

		tagsJSON, _ := json.Marshal(a.Tags)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO articles (url, title, author, published, tags, reading_time, summary, source)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(url) DO UPDATE SET
				title=excluded.title, author=excluded.author, published=excluded.published,
				tags=excluded.tags, reading_time=excluded.reading_time,
				summary=excluded.summary, source=excluded.source`,
			a.URL, a.Title, a.Author, a.Published,
			string(tagsJSON), a.ReadingTime, a.Summary, a.Source,
		)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", a.URL, err)
			summary.Failed++
			continue
		}

		if exists > 0 {
			fmt.Fprintf(w, "updated %s\n", a.URL)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", a.URL)
			summary.Indexed++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Failed)
	return summary, nil
}
