package vocabulary

import "errors"

var (
	// ErrViewSpellMismatch indicates spell elements that do not cover
	// the view string exactly.
	ErrViewSpellMismatch = errors.New("vocabulary: spell elements do not cover the view")

	// ErrUnitNotCovered indicates a reading character the dictionary
	// cannot type.
	ErrUnitNotCovered = errors.New("vocabulary: reading not covered by dictionary")

	// ErrFormat indicates a malformed vocabulary line.
	ErrFormat = errors.New("vocabulary: malformed entry line")
)
