// Package db persists résumé documents in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/sections"
)

// ErrNotFound is returned when no document has the requested ID
var ErrNotFound = errors.New("document not found")

// Store saves and loads whole documents
type Store interface {
	// Save inserts or replaces the document and all of its sections
	Save(ctx context.Context, doc *document.Document) error
	// Get loads a document; ErrNotFound when absent
	Get(ctx context.Context, id uuid.UUID) (*document.Document, error)
	// List returns the most recently updated documents first
	List(ctx context.Context, limit int) ([]Summary, error)
	// Delete removes a document; ErrNotFound when absent
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Summary is a listing row
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreError wraps a storage failure with the operation that caused it
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

// sectionRow is one stored section, canonical or extra, in document order
type sectionRow struct {
	Position int
	Key      string
	Label    string
	Value    string
	Extra    bool
}

func rowsOf(doc *document.Document) []sectionRow {
	rows := make([]sectionRow, 0, len(doc.Sections)+len(doc.Extra))
	for _, s := range doc.Sections {
		rows = append(rows, sectionRow{Position: len(rows), Key: string(s.Key), Label: s.Label, Value: s.Value})
	}
	for _, s := range doc.Extra {
		rows = append(rows, sectionRow{Position: len(rows), Key: string(s.Key), Label: s.Label, Value: s.Value, Extra: true})
	}
	return rows
}

// assemble rebuilds a document from stored rows, restoring lexicon flags
func assemble(id uuid.UUID, language string, createdAt, updatedAt time.Time, rows []sectionRow) (*document.Document, error) {
	doc := &document.Document{
		ID:        id,
		Language:  language,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
	for _, r := range rows {
		s := document.Section{Key: sections.Key(r.Key), Label: r.Label, Value: r.Value}
		if r.Extra {
			doc.Extra = append(doc.Extra, s)
			continue
		}
		if e, ok := sections.EntryFor(s.Key); ok {
			s.AIEligible = e.AIEligible
			s.Structured = e.Structured()
		}
		doc.Sections = append(doc.Sections, s)
	}
	if err := doc.Validate(); err != nil {
		return nil, &StoreError{Message: fmt.Sprintf("stored document %s is corrupt", id), Cause: err}
	}
	return doc, nil
}
