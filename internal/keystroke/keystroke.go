// Package keystroke defines the primitive types for single key strokes:
// the characters that can be struck, validated sequences of them, and the
// record of an actual stroke during a typing session.
package keystroke

import (
	"time"
)

// IsDisplayable reports whether r is a displayable ASCII character
// (U+0020 through U+007E). Only these can be produced by a key stroke on
// the supported layout.
func IsDisplayable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// Key is a single character produced by one physical key stroke.
type Key rune

// NewKey validates r as a strikeable character.
func NewKey(r rune) (Key, error) {
	if !IsDisplayable(r) {
		return 0, ErrInvalidKey
	}
	return Key(r), nil
}

// MustKey is NewKey that panics on invalid input. Intended for literals
// whose validity is known at the call site.
func MustKey(r rune) Key {
	k, err := NewKey(r)
	if err != nil {
		panic("keystroke: rune " + string(r) + " is not a valid key")
	}
	return k
}

// Sequence is a string of strikeable characters, e.g. one complete
// spelling such as "kyo".
type Sequence string

// NewSequence validates every rune of s as a strikeable character.
func NewSequence(s string) (Sequence, error) {
	for _, r := range s {
		if !IsDisplayable(r) {
			return "", ErrInvalidSequence
		}
	}
	return Sequence(s), nil
}

// MustSequence is NewSequence that panics on invalid input.
func MustSequence(s string) Sequence {
	seq, err := NewSequence(s)
	if err != nil {
		panic("keystroke: string " + s + " is not a valid key sequence")
	}
	return seq
}

// Len returns the number of key strokes needed to type the sequence.
func (s Sequence) Len() int { return len(s) }

// At returns the key at stroke position i.
func (s Sequence) At(i int) Key { return Key(s[i]) }

// Keys returns the sequence as individual keys.
func (s Sequence) Keys() []Key {
	keys := make([]Key, len(s))
	for i := 0; i < len(s); i++ {
		keys[i] = Key(s[i])
	}
	return keys
}

// HitMiss is the per-stroke classification reported to the caller.
type HitMiss int

const (
	// Hit means the stroke matched at least one live candidate.
	Hit HitMiss = iota
	// Miss means the stroke matched no live candidate. Misses never
	// change matching state; they are recorded for accuracy reporting.
	Miss
)

func (h HitMiss) String() string {
	if h == Hit {
		return "hit"
	}
	return "miss"
}

// Stroke records one actual key stroke, correct or not, with the time
// elapsed since the session started.
type Stroke struct {
	elapsed time.Duration
	key     Key
	correct bool
}

// NewStroke builds a stroke record.
func NewStroke(elapsed time.Duration, key Key, correct bool) Stroke {
	return Stroke{elapsed: elapsed, key: key, correct: correct}
}

// Elapsed returns the time since session start at which the stroke landed.
func (s Stroke) Elapsed() time.Duration { return s.elapsed }

// Key returns the struck character.
func (s Stroke) Key() Key { return s.key }

// Correct reports whether the stroke was accepted by some candidate.
func (s Stroke) Correct() bool { return s.correct }
