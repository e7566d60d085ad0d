package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable signals that the catalog source could not be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogEmpty signals a catalog that loaded without a single usable record.
	ErrCatalogEmpty = errors.New("catalog empty")
	// ErrInvalidSource signals a misconfigured catalog source.
	ErrInvalidSource = errors.New("invalid catalog source")
)

// SourceError wraps ErrCatalogUnavailable with the failing source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCatalogUnavailable.Error(), e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error { return []error{ErrCatalogUnavailable, e.Err} }

// NewSourceError creates a catalog source failure.
func NewSourceError(source string, err error) error {
	return &SourceError{Source: source, Err: err}
}
