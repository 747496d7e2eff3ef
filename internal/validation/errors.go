// Package validation checks structured section records before they are committed.
package validation

// DateError is a user-facing date rule violation. Message is already localised.
type DateError struct {
	Code    Code
	Message string
}

func (e *DateError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is matches another *DateError with the same code, ignoring the message
// so callers can test for a rule regardless of locale.
func (e *DateError) Is(target error) bool {
	t, ok := target.(*DateError)
	return ok && t.Code == e.Code
}
