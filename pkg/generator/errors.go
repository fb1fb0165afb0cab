package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequired reports required fields left empty.
	ErrMissingRequired = errors.New("generator: required fields are missing")
	// ErrInvalidValue reports a value that could not be coerced or formatted.
	ErrInvalidValue = errors.New("generator: invalid value")
	// ErrDuplicateItem reports an item already declared in the target file.
	ErrDuplicateItem = errors.New("generator: item already exists")
)

// StatusMissingRequired is the status reported for ErrMissingRequired.
const StatusMissingRequired = "Fill all required fields!"

// StatusError pairs a sentinel error with the one-line status shown to the
// user. Nothing is written to disk when a StatusError is returned.
type StatusError struct {
	Status string
	Fields []string
	Err    error
}

func (e *StatusError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Fields, ", "))
	}
	if e.Status != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Status)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Status returns the user-facing status line for err.
func Status(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status != "" {
		return statusErr.Status
	}
	return err.Error()
}

func missingRequired(labels []string) error {
	return &StatusError{
		Status: StatusMissingRequired,
		Fields: labels,
		Err:    ErrMissingRequired,
	}
}

func duplicateItem(name, path string) error {
	return &StatusError{
		Status: fmt.Sprintf("Item '%s' already exists!", name),
		Fields: []string{path},
		Err:    ErrDuplicateItem,
	}
}

func invalidValue(cause error) error {
	return &StatusError{
		Status: fmt.Sprintf("Invalid value: %v", cause),
		Err:    fmt.Errorf("%w: %w", ErrInvalidValue, cause),
	}
}
