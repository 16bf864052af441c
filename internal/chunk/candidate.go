package chunk

import (
	"romatype/internal/keystroke"
)

// Delayed marks a candidate whose key strokes are a strict prefix of a
// sibling candidate. Such a candidate cannot confirm its unit when fully
// typed; it confirms retroactively when the next stroke is one of the
// openers valid for the following unit.
//
// For the built-in dictionary only two shapes exist: the bare "n" of
// "ん" ("nn" being the longer sibling), and the "l"/"x" repeat
// candidates of "っ" ("ltu", "ltsu", "xtu" being the siblings).
type Delayed struct {
	openers []keystroke.Key
}

// NewDelayed builds a delayed-confirmation marker from the next unit's
// valid opening key strokes.
func NewDelayed(openers []keystroke.Key) *Delayed {
	return &Delayed{openers: openers}
}

// Openers returns the key strokes that confirm the candidate.
func (d *Delayed) Openers() []keystroke.Key { return d.openers }

// CanConfirm reports whether striking key confirms the candidate.
func (d *Delayed) CanConfirm(key keystroke.Key) bool {
	for _, k := range d.openers {
		if k == key {
			return true
		}
	}
	return false
}

// Candidate is one complete admissible key sequence for typing a unit.
// It usually has a single element; split typing of a double spell has
// two, one per character.
type Candidate struct {
	elements   []keystroke.Sequence
	constraint *keystroke.Key
	delayed    *Delayed
}

// NewCandidate builds a candidate from its spell elements, an optional
// head constraint on the next unit, and an optional delayed-confirmation
// marker.
func NewCandidate(elements []keystroke.Sequence, constraint *keystroke.Key, delayed *Delayed) *Candidate {
	if n := len(elements); n < 1 || n > 2 {
		panic("chunk: candidate must have 1 or 2 elements")
	}
	return &Candidate{elements: elements, constraint: constraint, delayed: delayed}
}

// Elements returns the candidate's spell elements.
func (c *Candidate) Elements() []keystroke.Sequence { return c.elements }

// IsSplit reports whether the candidate types a double spell character
// by character.
func (c *Candidate) IsSplit() bool { return len(c.elements) == 2 }

// Whole returns the complete key sequence of the candidate.
func (c *Candidate) Whole() keystroke.Sequence {
	if len(c.elements) == 1 {
		return c.elements[0]
	}
	return c.elements[0] + c.elements[1]
}

// Len returns the number of key strokes needed to type the candidate.
func (c *Candidate) Len() int {
	n := 0
	for _, e := range c.elements {
		n += e.Len()
	}
	return n
}

// KeyAt returns the key at stroke position i of the whole sequence.
func (c *Candidate) KeyAt(i int) keystroke.Key {
	return c.Whole().At(i)
}

// Constraint returns the head constraint this candidate imposes on the
// next unit's first key stroke, if any.
func (c *Candidate) Constraint() (keystroke.Key, bool) {
	if c.constraint == nil {
		return 0, false
	}
	return *c.constraint, true
}

// Delayed returns the delayed-confirmation marker, or nil.
func (c *Candidate) Delayed() *Delayed { return c.delayed }

// IsDelayedConfirmable reports whether the candidate carries a
// delayed-confirmation marker.
func (c *Candidate) IsDelayedConfirmable() bool { return c.delayed != nil }

// HeadSatisfies reports whether the candidate's first key stroke equals
// key.
func (c *Candidate) HeadSatisfies(key keystroke.Key) bool {
	return c.KeyAt(0) == key
}

// ElementIndexAt returns the element the key stroke at position i
// belongs to.
func (c *Candidate) ElementIndexAt(i int) ElementIndex {
	if i < 0 || i >= c.Len() {
		panic("chunk: key stroke index out of range")
	}
	if len(c.elements) == 2 && i >= c.elements[0].Len() {
		return ElementSecond
	}
	return ElementFirst
}

// IsElementEnd reports whether the key stroke at position i is the last
// stroke of one of the candidate's elements.
func (c *Candidate) IsElementEnd(i int) bool {
	if i < 0 || i >= c.Len() {
		panic("chunk: key stroke index out of range")
	}
	end := -1
	for _, e := range c.elements {
		end += e.Len()
		if i == end {
			return true
		}
	}
	return false
}

// ElementCount returns the per-element key stroke counts.
func (c *Candidate) ElementCount() ElementCount {
	counts := make([]int, len(c.elements))
	for i, e := range c.elements {
		counts[i] = e.Len()
	}
	return ElementCount{counts: counts}
}

// truncated returns a copy limited to the first n key strokes. The head
// constraint and delayed marker are cleared: a truncated candidate only
// ever ends a query, so nothing follows it.
func (c *Candidate) truncated(n int) *Candidate {
	elements := make([]keystroke.Sequence, 0, len(c.elements))
	count := 0
	for _, e := range c.elements {
		if count+e.Len() > n {
			elements = append(elements, e[:n-count])
			break
		}
		elements = append(elements, e)
		count += e.Len()
	}
	return &Candidate{elements: elements}
}

// ElementCount holds the key stroke count of each spell element of a
// candidate and converts between key stroke and spell coordinates.
type ElementCount struct {
	counts []int
}

// Whole returns the total key stroke count.
func (e ElementCount) Whole() int {
	n := 0
	for _, c := range e.counts {
		n += c
	}
	return n
}

// IsDouble reports whether there are two elements.
func (e ElementCount) IsDouble() bool { return len(e.counts) == 2 }

// Counts returns the per-element counts.
func (e ElementCount) Counts() []int { return e.counts }

// SpellDelta converts a key stroke delta (1-based count of strokes into
// the candidate) into the corresponding spell delta, given the spell
// character count the element set covers. A partially typed element
// counts as far as its weighted share, rounded up.
func (e ElementCount) SpellDelta(spellCount, keyStrokeDelta int) int {
	if len(e.counts) == 1 {
		return weightedCeil(keyStrokeDelta, spellCount, e.counts[0])
	}
	if keyStrokeDelta <= e.counts[0] {
		return weightedCeil(keyStrokeDelta, 1, e.counts[0])
	}
	return 1 + weightedCeil(keyStrokeDelta-e.counts[0], 1, e.counts[1])
}

// weightedCeil maps delta in a space of whole=den onto a space of
// whole=num, rounding up so a started element is counted.
func weightedCeil(delta, num, den int) int {
	return (delta*num + den - 1) / den
}
