package sections

import "fmt"

// UnknownKeyError is returned when a key name is not part of the lexicon
type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown section key: %q", e.Name)
}
