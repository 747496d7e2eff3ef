// Package schemas provides JSON Schema validation for exported documents and edit records.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed document.schema.json
	documentSchema string

	//go:embed record.schema.json
	recordSchema string

	compiledDocument = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return compile("document.schema.json", gojsonschema.NewStringLoader(documentSchema))
	})
	compiledRecord = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return compile("record.schema.json", gojsonschema.NewStringLoader(recordSchema))
	})
)

// DocumentSchema returns the embedded schema of an exported document
func DocumentSchema() string { return documentSchema }

// RecordSchema returns the embedded schema of a structured edit record
func RecordSchema() string { return recordSchema }

// FieldError is one violation, located by its dotted field path
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in one payload
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a schema or payload that could not be loaded at all
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateDocument checks exported document JSON against the embedded document schema
func ValidateDocument(data []byte) error {
	return validateEmbedded(compiledDocument, "document.schema.json", data)
}

// ValidateRecord checks edit record JSON against the embedded record schema
func ValidateRecord(data []byte) error {
	return validateEmbedded(compiledRecord, "record.schema.json", data)
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaFile, err := existingFile("schema", schemaPath)
	if err != nil {
		return err
	}
	jsonFile, err := existingFile("JSON", jsonPath)
	if err != nil {
		return err
	}

	schema, err := compile(schemaFile, gojsonschema.NewReferenceLoader("file://"+schemaFile))
	if err != nil {
		return err
	}
	return check(schema, schemaFile, gojsonschema.NewReferenceLoader("file://"+jsonFile))
}

// ValidateJSONString validates JSON content against schema content
func ValidateJSONString(schemaContent, jsonContent string) error {
	const name = "(string schema)"
	schema, err := compile(name, gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return err
	}
	return check(schema, name, gojsonschema.NewStringLoader(jsonContent))
}

func validateEmbedded(compiled func() (*gojsonschema.Schema, error), name string, data []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	return check(schema, name, gojsonschema.NewBytesLoader(data))
}

func existingFile(kind, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s path: %w", kind, err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return "", fmt.Errorf("%s file not found: %s", kind, abs)
	}
	return abs, nil
}

func compile(name string, loader gojsonschema.JSONLoader) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema did not compile", Cause: err}
	}
	return schema, nil
}

func check(schema *gojsonschema.Schema, name string, payload gojsonschema.JSONLoader) error {
	result, err := schema.Validate(payload)
	if err != nil {
		return &SchemaLoadError{Path: name, Message: "payload could not be read", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := result.Errors()
	ve := &ValidationError{Errors: make([]FieldError, 0, len(violations))}
	for _, desc := range violations {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
