package spell

import "fmt"

// InvalidRuneError reports a character that cannot appear in a spell.
type InvalidRuneError struct {
	Rune rune
}

func (e *InvalidRuneError) Error() string {
	return fmt.Sprintf("spell: %q cannot be used in a spell", e.Rune)
}
