package chunk

import (
	"romatype/internal/keystroke"
)

// Unprocessed is a compiled unit that has not been activated yet. It
// carries the full candidate set and the compile-time ideal candidate.
type Unprocessed struct {
	spell      Spell
	candidates []*Candidate
	ideal      *Candidate
}

// NewUnprocessed builds an unprocessed unit directly. Most callers get
// units from Compile; this constructor exists for tests and for query
// assembly that re-slices compiled unit lists.
func NewUnprocessed(spell Spell, candidates []*Candidate, ideal *Candidate) *Unprocessed {
	return &Unprocessed{spell: spell, candidates: candidates, ideal: ideal}
}

// Spell returns the unit's spell.
func (u *Unprocessed) Spell() Spell { return u.spell }

// Candidates returns the unit's candidates, length-sorted.
func (u *Unprocessed) Candidates() []*Candidate { return u.candidates }

// Ideal returns the compile-time ideal candidate.
func (u *Unprocessed) Ideal() *Candidate { return u.ideal }

// MinCandidate returns the shortest candidate whose first key stroke
// satisfies constraint; earliest wins on ties. With a nil constraint
// every candidate qualifies. Panics when no candidate qualifies, which
// cannot happen for constraints produced by the compiler.
func (u *Unprocessed) MinCandidate(constraint *keystroke.Key) *Candidate {
	var min *Candidate
	for _, c := range u.candidates {
		if constraint != nil && !c.HeadSatisfies(*constraint) {
			continue
		}
		if min == nil || c.Len() < min.Len() {
			min = c
		}
	}
	if min == nil {
		panic("chunk: no candidate satisfies the head constraint")
	}
	return min
}

// MinLen returns the key stroke count of the shortest candidate.
func (u *Unprocessed) MinLen() int {
	return u.MinCandidate(nil).Len()
}

// StrictKeyStrokeCount truncates the unit so that no candidate exceeds
// limit key strokes. Intended for the last unit of a query built under
// a key stroke budget.
//
// Candidates longer than the limit are cut at the limit; delayed
// confirmable candidates within the limit are rebuilt as ordinary
// candidates, otherwise typing exactly the limit would never confirm.
// Truncation can make candidates collide, so duplicates are dropped
// keeping the first. The ideal candidate becomes the first remaining.
func (u *Unprocessed) StrictKeyStrokeCount(limit int) {
	if limit <= 0 || limit > u.MinLen() {
		panic("chunk: key stroke limit must be in 1..=shortest candidate")
	}

	var out []*Candidate
	seen := make(map[keystroke.Sequence]bool)
	for _, c := range u.candidates {
		if c.Len() > limit || c.IsDelayedConfirmable() {
			c = c.truncated(limit)
		}
		whole := c.Whole()
		if seen[whole] {
			continue
		}
		seen[whole] = true
		out = append(out, c)
	}

	u.candidates = out
	u.ideal = out[0]
}

// IntoInflight activates the unit. When the previous unit's confirmed
// candidate carries a head constraint, candidates whose first key stroke
// does not match start out retired.
func (u *Unprocessed) IntoInflight(constraint *keystroke.Key) *Inflight {
	var live, retired []*Candidate
	for _, c := range u.candidates {
		if constraint == nil || c.HeadSatisfies(*constraint) {
			live = append(live, c)
		} else {
			retired = append(retired, c)
		}
	}
	return &Inflight{
		spell:   u.spell,
		ideal:   u.ideal,
		live:    live,
		retired: retired,
	}
}
