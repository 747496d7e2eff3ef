package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection is returned for a key outside the lexicon
	ErrUnknownSection = errors.New("unknown section")
	// ErrNotStructured is returned when a codec operation targets a freeform section
	ErrNotStructured = errors.New("section is not structured")
)

// InvariantError reports a document whose sections break the canonical layout
type InvariantError struct {
	Message string
	Cause   error
}

func (e *InvariantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid document: %s", e.Message)
}

func (e *InvariantError) Unwrap() error {
	return e.Cause
}
