package keystroke

import "errors"

var (
	// ErrInvalidKey indicates a rune outside the displayable ASCII range.
	ErrInvalidKey = errors.New("keystroke: not a displayable ASCII character")

	// ErrInvalidSequence indicates a string containing non-strikeable runes.
	ErrInvalidSequence = errors.New("keystroke: sequence contains non-strikeable characters")
)
