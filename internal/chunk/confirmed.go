package chunk

import (
	"romatype/internal/keystroke"
)

// Confirmed is a finished unit. It is immutable: exactly one candidate
// survived, the cursor reached its length, and the stroke log is final.
type Confirmed struct {
	spell     Spell
	candidate *Candidate
	retired   []*Candidate
	ideal     *Candidate
	strokes   []keystroke.Stroke
}

// Spell returns the unit's spell.
func (c *Confirmed) Spell() Spell { return c.spell }

// Candidate returns the candidate the unit was confirmed with.
func (c *Confirmed) Candidate() *Candidate { return c.candidate }

// Ideal returns the compile-time ideal candidate.
func (c *Confirmed) Ideal() *Candidate { return c.ideal }

// Strokes returns the unit's complete stroke log, wrong strokes
// included.
func (c *Confirmed) Strokes() []keystroke.Stroke { return c.strokes }

// RetiredCandidates returns the candidates eliminated along the way.
func (c *Confirmed) RetiredCandidates() []*Candidate { return c.retired }

// CorrectCount returns the number of correct strokes in the log. It
// always equals the confirmed candidate's key stroke count.
func (c *Confirmed) CorrectCount() int {
	n := 0
	for _, s := range c.strokes {
		if s.Correct() {
			n++
		}
	}
	return n
}

// WrongCount returns the number of wrong strokes in the log.
func (c *Confirmed) WrongCount() int {
	return len(c.strokes) - c.CorrectCount()
}

// Constraint returns the head constraint the confirmed candidate
// imposes on the next unit, if any.
func (c *Confirmed) Constraint() (keystroke.Key, bool) {
	return c.candidate.Constraint()
}

// WrongStrokesAt returns the wrong strokes attributed to the correct
// stroke at position idx.
func (c *Confirmed) WrongStrokesAt(idx int) []keystroke.Stroke {
	return wrongStrokesAt(c.strokes, idx)
}

// SpellEndVector maps every log entry to the number of spell characters
// it finishes, or 0.
func (c *Confirmed) SpellEndVector() []int {
	return spellEndVector(c.strokes, c.candidate, c.spell.Count())
}

// WrongCountOfElement counts the wrong strokes charged to spell element
// idx of the confirmed candidate.
func (c *Confirmed) WrongCountOfElement(idx ElementIndex) int {
	return wrongCountOfElement(c.strokes, c.candidate, idx)
}
