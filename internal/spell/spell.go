// Package spell defines the reading-side primitive: strings of characters
// that may appear in a phonetic reading, which is displayable ASCII,
// hiragana, or the Japanese symbols the dictionary maps to ASCII strokes.
package spell

import (
	"romatype/internal/keystroke"
)

// String is a validated spell string.
type String string

// New validates every rune of s as usable in a spell.
func New(s string) (String, error) {
	for _, r := range s {
		if !Usable(r) {
			return "", &InvalidRuneError{Rune: r}
		}
	}
	return String(s), nil
}

// MustNew is New that panics on invalid input.
func MustNew(s string) String {
	ss, err := New(s)
	if err != nil {
		panic("spell: " + err.Error())
	}
	return ss
}

// Count returns the number of characters in the spell.
func (s String) Count() int {
	n := 0
	for range string(s) {
		n++
	}
	return n
}

// Runes returns the spell as individual characters.
func (s String) Runes() []rune { return []rune(string(s)) }

// ContainsDisplayableASCII reports whether any character of the spell is
// displayable ASCII. Such spells pass through to key strokes verbatim.
func (s String) ContainsDisplayableASCII() bool {
	for _, r := range s {
		if keystroke.IsDisplayable(r) {
			return true
		}
	}
	return false
}

// Usable reports whether r may appear in a spell string.
func Usable(r rune) bool {
	return keystroke.IsDisplayable(r) || IsHiragana(r) || IsJapaneseSymbol(r)
}

// IsHiragana reports whether r is in the hiragana block the dictionary
// covers (U+3041..U+308F, U+3092..U+3094).
func IsHiragana(r rune) bool {
	switch {
	case r >= 'ぁ' && r <= 'わ':
		return true
	case r >= 'を' && r <= 'ゔ':
		return true
	}
	return false
}

// IsJapaneseSymbol reports whether r is one of the full-width symbols that
// can appear in a reading and map to ASCII key strokes.
func IsJapaneseSymbol(r rune) bool {
	switch {
	case r == '’' || r == '”':
		// full-width quotation marks
		return true
	case r >= '　' && r <= '。':
		// ideographic space, comma, full stop
		return true
	case r == '「' || r == '」':
		// corner brackets
		return true
	case r == '〜':
		// wave dash
		return true
	case r == '・' || r == 'ー':
		// middle dot, prolonged sound mark
		return true
	case r == '！':
		return true
	case r >= '＃' && r <= '＆':
		return true
	case r >= '（' && r <= '＋':
		return true
	case r == '／':
		return true
	case r >= '：' && r <= '＠':
		return true
	case r >= '＾' && r <= '｀':
		return true
	case r >= '｛' && r <= '｝':
		return true
	case r == '￥':
		return true
	}
	return false
}
