package chunk

import "errors"

var (
	// ErrSpellShape indicates a spell that is not a valid unit: the
	// length is not 1 or 2, or ASCII is mixed into a multi-character
	// spell.
	ErrSpellShape = errors.New("chunk: spell must be 1 character, or 2 characters without ASCII")

	// ErrUnitNotCovered indicates a unit spell the dictionary has no
	// spellings for. Dictionary completeness is a precondition of the
	// caller.
	ErrUnitNotCovered = errors.New("chunk: unit not covered by dictionary")
)
