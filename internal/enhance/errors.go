package enhance

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldBusy is returned while another request for the same field is in flight
	ErrFieldBusy = errors.New("an enhancement for this field is already in progress")
	// ErrNotEligible is returned for sections the hook may not rewrite
	ErrNotEligible = errors.New("section is not eligible for enhancement")
	// ErrEmptyInput is returned when there is no text to enhance
	ErrEmptyInput = errors.New("nothing to enhance")
)

// InputTooLongError rejects text above the input ceiling before any call is made
type InputTooLongError struct {
	Runes int
	Max   int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("text is too long to enhance: %d characters, maximum is %d", e.Runes, e.Max)
}

// Error represents a failure of the enhancement collaborator
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
