// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a record of every document link a collection
// run has seen. The catalog is informational: skip and resume decisions
// are made from file presence on disk, never from catalog rows.
package catalog

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sds-collector/pkg/types"
)

// Catalog manages the SQLite document catalog.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	url        TEXT PRIMARY KEY,
	filename   TEXT NOT NULL DEFAULT '',
	page       INTEGER NOT NULL DEFAULT 0,
	status     TEXT NOT NULL,
	page_count INTEGER NOT NULL DEFAULT 0,
	seen_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(filename);
`
	_, err := c.db.Exec(schema)
	return err
}

// Record upserts a document row keyed by URL. A later sighting of the same
// link replaces the earlier outcome.
func (c *Catalog) Record(doc types.Document) error {
	const stmt = `
INSERT INTO documents (url, filename, page, status, page_count, seen_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	filename   = excluded.filename,
	page       = excluded.page,
	status     = excluded.status,
	page_count = excluded.page_count,
	seen_at    = excluded.seen_at
`
	_, err := c.db.Exec(stmt, doc.URL, doc.Filename, doc.Page, string(doc.Status), doc.PageCount, doc.SeenAt)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", doc.URL, err)
	}
	return nil
}

// SetPageCount stores the validated page count for all rows with the given
// local filename.
func (c *Catalog) SetPageCount(filename string, pages int) error {
	const stmt = `UPDATE documents SET page_count = ? WHERE filename = ?`
	if _, err := c.db.Exec(stmt, pages, filename); err != nil {
		return fmt.Errorf("updating page count for %s: %w", filename, err)
	}
	return nil
}

// MarkInvalid flags all rows with the given local filename as invalid.
func (c *Catalog) MarkInvalid(filename string) error {
	const stmt = `UPDATE documents SET status = ?, page_count = 0 WHERE filename = ?`
	if _, err := c.db.Exec(stmt, string(types.StatusInvalid), filename); err != nil {
		return fmt.Errorf("marking %s invalid: %w", filename, err)
	}
	return nil
}

// List returns up to limit documents, most recently seen first.
func (c *Catalog) List(limit int) ([]types.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.db.Query(
		`SELECT url, filename, page, status, page_count, seen_at
		 FROM documents ORDER BY seen_at DESC, url LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Stats returns document counts grouped by status.
func (c *Catalog) Stats() (map[types.DocumentStatus]int, error) {
	rows, err := c.db.Query(`SELECT status, COUNT(*) FROM documents GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[types.DocumentStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats[types.DocumentStatus(status)] = count
	}
	return stats, rows.Err()
}

// ExportYAML writes every catalog row to w as a YAML document list,
// ordered by URL for stable output.
func (c *Catalog) ExportYAML(w io.Writer) error {
	rows, err := c.db.Query(
		`SELECT url, filename, page, status, page_count, seen_at
		 FROM documents ORDER BY url`)
	if err != nil {
		return fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func scanDocuments(rows *sql.Rows) ([]types.Document, error) {
	var docs []types.Document
	for rows.Next() {
		var d types.Document
		var status string
		if err := rows.Scan(&d.URL, &d.Filename, &d.Page, &status, &d.PageCount, &d.SeenAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		d.Status = types.DocumentStatus(status)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
