package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/schemas"
)

// readDocument loads an exported document, checking schema and section layout
func readDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument exports doc to path
func writeDocument(path string, doc *document.Document) error {
	data, err := doc.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}
	return nil
}

// readRecord loads a record JSON file and checks it against the record schema
func readRecord(path string) (codec.Record, error) {
	var rec codec.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("failed to read record file: %w", err)
	}
	if err := schemas.ValidateRecord(data); err != nil {
		return rec, fmt.Errorf("invalid record %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to unmarshal record JSON: %w", err)
	}
	return rec, nil
}
