package dict

import "errors"

var (
	// ErrUnitLength indicates a dictionary unit whose spell is not 1 or 2
	// characters long.
	ErrUnitLength = errors.New("dict: unit must be 1 or 2 characters")

	// ErrNoSpellings indicates a unit with an empty spelling list.
	ErrNoSpellings = errors.New("dict: unit has no spellings")

	// ErrEmptySpelling indicates an empty key sequence for a unit.
	ErrEmptySpelling = errors.New("dict: empty spelling")

	// ErrUnknownFormat indicates a dictionary file extension that is not
	// .toml, .yaml, .yml, or .json.
	ErrUnknownFormat = errors.New("dict: unknown dictionary file format")
)
