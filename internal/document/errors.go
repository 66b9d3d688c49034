package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document ID is not in the store.
	ErrNotFound = errors.New("document not found")

	// ErrSubstringNotFound is returned when an edit's search string does not
	// occur verbatim in the document.
	ErrSubstringNotFound = errors.New("string not found in document")

	// ErrEmptySearch is returned when an edit is asked to replace the empty string.
	ErrEmptySearch = errors.New("search string must not be empty")
)

// Error describes a failed store operation.
type Error struct {
	Op     string // "get", "replace"
	ID     string
	Search string // only set for replace failures
	Err    error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("Document with ID '%s' not found.", e.ID)
	case errors.Is(e.Err, ErrSubstringNotFound):
		return fmt.Sprintf("String '%s' not found in document '%s'.", e.Search, e.ID)
	case errors.Is(e.Err, ErrEmptySearch):
		return fmt.Sprintf("Cannot edit document '%s': old_string must not be empty.", e.ID)
	default:
		return fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err was caused by an unknown document ID.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
