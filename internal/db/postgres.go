package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-sections/internal/document"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         UUID PRIMARY KEY,
	language   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS document_sections (
	document_id UUID NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	key         TEXT NOT NULL,
	label       TEXT NOT NULL,
	value       TEXT NOT NULL,
	extra       BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (document_id, position)
);
CREATE INDEX IF NOT EXISTS documents_updated_at_idx ON documents (updated_at DESC);
`

// Postgres wraps a PostgreSQL connection pool
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and creates the tables
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Postgres{pool: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the document tables if they do not exist
func (db *Postgres) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *Postgres) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// Save upserts the document and replaces its section rows in one transaction
func (db *Postgres) Save(ctx context.Context, doc *document.Document) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return &StoreError{Message: "failed to begin transaction", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, language, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET language = $2, updated_at = $4`,
		doc.ID, doc.Language, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to save document %s", doc.ID), Cause: err}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM document_sections WHERE document_id = $1`, doc.ID); err != nil {
		return &StoreError{Message: "failed to clear sections", Cause: err}
	}

	rows := rowsOf(doc)
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"document_sections"},
		[]string{"document_id", "position", "key", "label", "value", "extra"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{doc.ID, r.Position, r.Key, r.Label, r.Value, r.Extra}, nil
		}),
	)
	if err != nil {
		return &StoreError{Message: "failed to save sections", Cause: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &StoreError{Message: "failed to commit document", Cause: err}
	}
	return nil
}

// Get loads a document with its sections
func (db *Postgres) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var (
		language             string
		createdAt, updatedAt time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT language, created_at, updated_at FROM documents WHERE id = $1`, id,
	).Scan(&language, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Message: fmt.Sprintf("failed to get document %s", id), Cause: err}
	}

	rows, err := db.pool.Query(ctx,
		`SELECT position, key, label, value, extra FROM document_sections
		 WHERE document_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, &StoreError{Message: "failed to query sections", Cause: err}
	}
	defer rows.Close()

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

	return assemble(id, language, createdAt, updatedAt, sectionRows)
}

// List returns document summaries, most recently updated first
func (db *Postgres) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT d.id, d.language, COALESCE(n.value, ''), COALESCE(h.value, ''), d.updated_at
		 FROM documents d
		 LEFT JOIN document_sections n ON n.document_id = d.id AND n.key = 'name' AND NOT n.extra
		 LEFT JOIN document_sections h ON h.document_id = d.id AND h.key = 'headline' AND NOT h.extra
		 ORDER BY d.updated_at DESC
		 LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, &StoreError{Message: "failed to list documents", Cause: err}
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Language, &s.Name, &s.Headline, &s.UpdatedAt); err != nil {
			return nil, &StoreError{Message: "failed to scan document", Cause: err}
		}
		s.UpdatedAt = s.UpdatedAt.UTC()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to read documents", Cause: err}
	}
	return summaries, nil
}

// Delete removes a document; its sections cascade
func (db *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to delete document %s", id), Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
