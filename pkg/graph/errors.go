package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrConceptNotFound matches any *ConceptNotFoundError.
	ErrConceptNotFound = errors.New("concept not found")
	// ErrNoPath matches any *NoPathError.
	ErrNoPath = errors.New("no path between concepts")
)

// ConceptNotFoundError reports a name with no exact or case-insensitive match.
type ConceptNotFoundError struct {
	Name string
}

func (e *ConceptNotFoundError) Error() string {
	return fmt.Sprintf("concept %q not found", e.Name)
}

func (e *ConceptNotFoundError) Is(target error) bool {
	return target == ErrConceptNotFound
}

// NoPathError reports two resolved concepts in different components. From
// and To hold the canonical node names.
type NoPathError struct {
	From string
	To   string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path found between %q and %q", e.From, e.To)
}

func (e *NoPathError) Is(target error) bool {
	return target == ErrNoPath
}
