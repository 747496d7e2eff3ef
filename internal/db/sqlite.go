package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-sections/internal/document"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	language   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS document_sections (
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	key         TEXT NOT NULL,
	label       TEXT NOT NULL,
	value       TEXT NOT NULL,
	extra       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (document_id, position)
);
CREATE INDEX IF NOT EXISTS documents_updated_at_idx ON documents (updated_at);
`

// SQLite stores documents in a local SQLite file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Save upserts the document and replaces its section rows in one transaction
func (s *SQLite) Save(ctx context.Context, doc *document.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Message: "failed to begin transaction", Cause: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, language, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET language = excluded.language, updated_at = excluded.updated_at`,
		doc.ID.String(), doc.Language, formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt),
	)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to save document %s", doc.ID), Cause: err}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_sections WHERE document_id = ?`, doc.ID.String()); err != nil {
		return &StoreError{Message: "failed to clear sections", Cause: err}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO document_sections (document_id, position, key, label, value, extra) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StoreError{Message: "failed to prepare section insert", Cause: err}
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rowsOf(doc) {
		if _, err := stmt.ExecContext(ctx, doc.ID.String(), r.Position, r.Key, r.Label, r.Value, r.Extra); err != nil {
			return &StoreError{Message: fmt.Sprintf("failed to save section %s", r.Key), Cause: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Message: "failed to commit document", Cause: err}
	}
	return nil
}

// Get loads a document with its sections
func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var language, created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT language, created_at, updated_at FROM documents WHERE id = ?`, id.String(),
	).Scan(&language, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Message: fmt.Sprintf("failed to get document %s", id), Cause: err}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, key, label, value, extra FROM document_sections
		 WHERE document_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, &StoreError{Message: "failed to query sections", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var sectionRows []sectionRow
	for rows.Next() {
		var r sectionRow
		if err := rows.Scan(&r.Position, &r.Key, &r.Label, &r.Value, &r.Extra); err != nil {
			return nil, &StoreError{Message: "failed to scan section", Cause: err}
		}
		sectionRows = append(sectionRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to read sections", Cause: err}
	}

	createdAt, err := parseTime(created)
	if err != nil {
		return nil, &StoreError{Message: "invalid created_at", Cause: err}
	}
	updatedAt, err := parseTime(updated)
	if err != nil {
		return nil, &StoreError{Message: "invalid updated_at", Cause: err}
	}
	return assemble(id, language, createdAt, updatedAt, sectionRows)
}

// List returns document summaries, most recently updated first
func (s *SQLite) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.language, COALESCE(n.value, ''), COALESCE(h.value, ''), d.updated_at
		 FROM documents d
		 LEFT JOIN document_sections n ON n.document_id = d.id AND n.key = 'name' AND n.extra = 0
		 LEFT JOIN document_sections h ON h.document_id = d.id AND h.key = 'headline' AND h.extra = 0
		 ORDER BY d.updated_at DESC
		 LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, &StoreError{Message: "failed to list documents", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			id      string
			updated string
		)
		if err := rows.Scan(&id, &sum.Language, &sum.Name, &sum.Headline, &updated); err != nil {
			return nil, &StoreError{Message: "failed to scan document", Cause: err}
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, &StoreError{Message: "invalid document id", Cause: err}
		}
		if sum.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, &StoreError{Message: "invalid updated_at", Cause: err}
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to read documents", Cause: err}
	}
	return summaries, nil
}

// Delete removes a document; its sections cascade
func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id.String())
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to delete document %s", id), Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StoreError{Message: "failed to read affected rows", Cause: err}
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text so that they sort lexically
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
