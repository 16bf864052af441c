package query

import "errors"

var (
	// ErrNoEntries indicates a build request without vocabulary.
	ErrNoEntries = errors.New("query: no vocabulary entries")

	// ErrQuantifier indicates a non-positive quantifier.
	ErrQuantifier = errors.New("query: quantifier must be positive")
)
