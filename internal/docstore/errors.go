package docstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document's backing file or key is absent.
var ErrNotFound = errors.New("document not found")

// ParseError wraps a failure to decode or validate a stored document. The
// store never substitutes default data for a document it cannot parse;
// masking a corrupt file as an empty one would hide data loss.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Name, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// WriteError wraps a backend I/O or quota failure during a write.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Name, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError wraps a backend I/O failure during a delete. Deleting a
// document that is already absent is success, not a DeleteError.
type DeleteError struct {
	Name string
	Err  error
}

func (e *DeleteError) Error() string { return fmt.Sprintf("delete %s: %v", e.Name, e.Err) }
func (e *DeleteError) Unwrap() error { return e.Err }
