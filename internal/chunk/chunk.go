// Package chunk implements the typing core: phonetic units, their key
// stroke candidates, the two-pass candidate compiler, and the per-unit
// matching automaton that consumes key strokes one at a time.
//
// A unit moves through three states. Unprocessed units carry their full
// candidate set and an ideal candidate chosen at compile time. The
// sequencer activates a unit into Inflight, which owns the shared cursor,
// the live/retired candidate partition, and the actual stroke log.
// Once exactly one live candidate remains and the cursor reaches its
// length, the unit becomes Confirmed and is immutable.
package chunk

import (
	"romatype/internal/spell"
)

// Kind classifies how a unit's spell is typed.
type Kind int

const (
	// KindLiteral is a one-character displayable ASCII spell typed
	// verbatim with a single key stroke.
	KindLiteral Kind = iota
	// KindSingle is a one-character spell looked up in the dictionary.
	KindSingle
	// KindDouble is a two-character spell that can be typed combined
	// ("kyo") or split into the two characters ("kilyo").
	KindDouble
)

// Spell is a unit's classified spell.
type Spell struct {
	s    spell.String
	kind Kind
}

// NewSpell classifies s as a unit spell. The spell must be one or two
// characters; a spell containing displayable ASCII must be exactly one
// character.
func NewSpell(s spell.String) (Spell, error) {
	switch s.Count() {
	case 1:
		if s.ContainsDisplayableASCII() {
			return Spell{s: s, kind: KindLiteral}, nil
		}
		return Spell{s: s, kind: KindSingle}, nil
	case 2:
		if s.ContainsDisplayableASCII() {
			return Spell{}, ErrSpellShape
		}
		return Spell{s: s, kind: KindDouble}, nil
	default:
		return Spell{}, ErrSpellShape
	}
}

// MustSpell is NewSpell that panics on invalid input.
func MustSpell(s string) Spell {
	sp, err := NewSpell(spell.MustNew(s))
	if err != nil {
		panic("chunk: " + err.Error())
	}
	return sp
}

// String returns the underlying spell string.
func (s Spell) String() spell.String { return s.s }

// Kind returns the spell classification.
func (s Spell) Kind() Kind { return s.kind }

// Count returns the number of characters in the spell.
func (s Spell) Count() int { return s.s.Count() }

// At returns the character at element index idx as a one-character spell
// string. For combined typing of a double spell, both characters belong
// to element index 0.
func (s Spell) At(idx ElementIndex) spell.String {
	runes := s.s.Runes()
	if s.kind == KindDouble {
		return spell.String(runes[idx])
	}
	return s.s
}

// FirstHalf returns the first character of a double spell.
func (s Spell) FirstHalf() spell.String {
	return spell.String(s.s.Runes()[0])
}

// SecondHalf returns the second character of a double spell.
func (s Spell) SecondHalf() spell.String {
	return spell.String(s.s.Runes()[1])
}

// ElementIndex addresses one spell element of a candidate. Split
// candidates of a double spell have two elements; everything else has
// one.
type ElementIndex int

const (
	// ElementFirst is the only element, or the first of a split pair.
	ElementFirst ElementIndex = 0
	// ElementSecond is the second element of a split pair.
	ElementSecond ElementIndex = 1
)
