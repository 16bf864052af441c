package chunk

import (
	"time"

	"romatype/internal/keystroke"
	"romatype/internal/spell"
)

// Inflight is the active unit the automaton is matching strokes
// against. All live candidates share one cursor; elimination moves a
// candidate to the retired list and is irreversible.
type Inflight struct {
	spell   Spell
	ideal   *Candidate
	live    []*Candidate
	retired []*Candidate
	cursor  int
	// strokes is the unit's own log, wrong strokes included.
	strokes []keystroke.Stroke
	// pending holds strokes typed while a delayed confirmable candidate
	// is waiting for disambiguation. They belong either to this unit
	// (a longer sibling continues) or to the next one (the delayed
	// candidate confirms); that is not known until the deciding stroke.
	pending []keystroke.Stroke
}

// StrokeKind classifies the outcome of one stroke.
type StrokeKind int

const (
	// StrokeWrong matched no live candidate. State is unchanged apart
	// from the log.
	StrokeWrong StrokeKind = iota
	// StrokeCorrect matched at least one live candidate and advanced
	// the cursor.
	StrokeCorrect
	// StrokeConfirmedDelayed confirmed the unit via the disambiguation
	// path. The stroke was not consumed into this unit; it is the first
	// entry of the returned pending strokes.
	StrokeConfirmedDelayed
)

// SpellFinished reports a spell element completed by a stroke, with the
// wrong strokes charged to it.
type SpellFinished struct {
	Spell      spell.String
	WrongCount int
}

// StrokeResult is what one call to Stroke observed.
type StrokeResult struct {
	Kind StrokeKind
	// Confirmed reports that the unit is now confirmed, via either path.
	Confirmed bool
	// Pending holds the strokes to replay into the next unit. Only a
	// delayed confirmation produces them.
	Pending []keystroke.Stroke
	// SpellFinished is set when the stroke completed a spell element.
	SpellFinished *SpellFinished
	// Wrong holds the wrong strokes recorded for the position this
	// correct stroke landed on. Nil for wrong and delayed results.
	Wrong []keystroke.Stroke
}

// Spell returns the unit's spell.
func (c *Inflight) Spell() Spell { return c.spell }

// Ideal returns the compile-time ideal candidate. It is never pruned,
// so it may differ from every live candidate once strokes diverge.
func (c *Inflight) Ideal() *Candidate { return c.ideal }

// LiveCandidates returns the still-viable candidates.
func (c *Inflight) LiveCandidates() []*Candidate { return c.live }

// RetiredCandidates returns the eliminated candidates.
func (c *Inflight) RetiredCandidates() []*Candidate { return c.retired }

// Cursor returns the shared cursor position.
func (c *Inflight) Cursor() int { return c.cursor }

// Strokes returns the unit's own stroke log.
func (c *Inflight) Strokes() []keystroke.Stroke { return c.strokes }

// PendingStrokes returns the undecided strokes buffered during delayed
// confirmation.
func (c *Inflight) PendingStrokes() []keystroke.Stroke { return c.pending }

// WrongPendingCount returns the number of wrong strokes in the pending
// buffer.
func (c *Inflight) WrongPendingCount() int {
	n := 0
	for _, s := range c.pending {
		if !s.Correct() {
			n++
		}
	}
	return n
}

// EffectiveCandidate returns the shortest live candidate, the one used
// for display and remaining-stroke estimates.
func (c *Inflight) EffectiveCandidate() *Candidate {
	var min *Candidate
	for _, cand := range c.live {
		if min == nil || cand.Len() < min.Len() {
			min = cand
		}
	}
	if min == nil {
		panic("chunk: active unit has no live candidates")
	}
	return min
}

// RemainingStrokes returns how many strokes are left for candidate.
func (c *Inflight) RemainingStrokes(candidate *Candidate) int {
	return candidate.Len() - c.cursor
}

// IsConfirmed reports whether exactly one live candidate remains and it
// is fully typed. A fully typed delayed confirmable candidate with live
// siblings does not confirm.
func (c *Inflight) IsConfirmed() bool {
	return len(c.live) == 1 && c.cursor == c.live[0].Len()
}

// delayedConfirmableIndex returns the index of the live candidate that
// is delayed confirmable and fully typed, or -1. At most one such
// candidate can exist at a time.
func (c *Inflight) delayedConfirmableIndex() int {
	idx := -1
	for i, cand := range c.live {
		if cand.IsDelayedConfirmable() && c.cursor == cand.Len() {
			if idx >= 0 {
				panic("chunk: two delayed confirmable candidates on one unit")
			}
			idx = i
		}
	}
	return idx
}

// IsDelayedConfirmable reports whether the unit is waiting for a
// disambiguation stroke.
func (c *Inflight) IsDelayedConfirmable() bool {
	return c.delayedConfirmableIndex() >= 0
}

// Stroke feeds one key stroke to the unit. elapsed must be
// non-decreasing across calls; stroking a confirmed unit panics.
func (c *Inflight) Stroke(elapsed time.Duration, key keystroke.Key) StrokeResult {
	if c.IsConfirmed() {
		panic("chunk: stroke on a confirmed unit")
	}
	if last, ok := c.lastStroke(); ok && elapsed < last.Elapsed() {
		panic("chunk: stroke timestamps must be non-decreasing")
	}

	delayedIdx := c.delayedConfirmableIndex()

	// Disambiguation: a stroke that opens the next unit confirms the
	// waiting candidate retroactively and is never consumed here.
	if delayedIdx >= 0 && c.live[delayedIdx].Delayed().CanConfirm(key) {
		c.pending = append(c.pending, keystroke.NewStroke(elapsed, key, true))
		c.reduceTo([]int{delayedIdx})

		pending := c.pending
		c.pending = nil
		return StrokeResult{
			Kind:          StrokeConfirmedDelayed,
			Confirmed:     true,
			Pending:       pending,
			SpellFinished: c.finishableSpell(c.cursor - 1),
		}
	}

	// Hit test against every live candidate's next unconsumed stroke.
	// A waiting delayed candidate has no next stroke; this stroke has
	// already decided against confirming it.
	var hits []int
	for i, cand := range c.live {
		if i == delayedIdx || c.cursor >= cand.Len() {
			continue
		}
		if cand.KeyAt(c.cursor) == key {
			hits = append(hits, i)
		}
	}
	isHit := len(hits) > 0

	stroke := keystroke.NewStroke(elapsed, key, isHit)
	if delayedIdx >= 0 {
		// Undecided until disambiguation: the stroke may end up in the
		// next unit.
		c.pending = append(c.pending, stroke)
	} else {
		c.strokes = append(c.strokes, stroke)
	}

	if !isHit {
		return StrokeResult{Kind: StrokeWrong}
	}

	c.reduceTo(hits)
	c.cursor++

	res := StrokeResult{Kind: StrokeCorrect}

	if c.IsConfirmed() {
		// Ordinary confirmation keeps everything, pending included, in
		// this unit's own log.
		c.strokes = append(c.strokes, c.pending...)
		c.pending = nil
		res.Confirmed = true
		res.SpellFinished = c.finishableSpell(c.cursor - 1)
	} else if c.delayedConfirmableIndex() < 0 {
		res.SpellFinished = c.finishableSpell(c.cursor - 1)
	}
	res.Wrong = wrongStrokesAt(c.strokes, c.cursor-1)
	return res
}

func (c *Inflight) lastStroke() (keystroke.Stroke, bool) {
	if n := len(c.pending); n > 0 {
		return c.pending[n-1], true
	}
	if n := len(c.strokes); n > 0 {
		return c.strokes[n-1], true
	}
	return keystroke.Stroke{}, false
}

// reduceTo keeps only the live candidates at the given indexes, moving
// the rest to the retired list in order.
func (c *Inflight) reduceTo(keep []int) {
	keepSet := make(map[int]bool, len(keep))
	for _, i := range keep {
		keepSet[i] = true
	}
	var live []*Candidate
	for i, cand := range c.live {
		if keepSet[i] {
			live = append(live, cand)
		} else {
			c.retired = append(c.retired, cand)
		}
	}
	c.live = live
}

// finishableSpell reports the spell element completed by the correct
// stroke at key stroke index i of the effective candidate, or nil.
func (c *Inflight) finishableSpell(i int) *SpellFinished {
	effective := c.EffectiveCandidate()
	if i < 0 || i >= effective.Len() || !effective.IsElementEnd(i) {
		return nil
	}
	idx := effective.ElementIndexAt(i)
	var sp spell.String
	if effective.IsSplit() {
		sp = c.spell.At(idx)
	} else {
		sp = c.spell.String()
	}
	return &SpellFinished{
		Spell:      sp,
		WrongCount: wrongCountOfElement(c.strokes, effective, idx),
	}
}

// SpellCursor describes which spell characters the cursor is on.
type SpellCursor int

const (
	// SpellCursorSingle covers the only character of a single spell.
	SpellCursorSingle SpellCursor = iota
	// SpellCursorDoubleFirst covers the first character of a double
	// spell typed split.
	SpellCursorDoubleFirst
	// SpellCursorDoubleSecond covers the second character of a double
	// spell typed split.
	SpellCursorDoubleSecond
	// SpellCursorDoubleCombined covers both characters of a double
	// spell typed combined.
	SpellCursorDoubleCombined
)

// Absolute converts the cursor into absolute spell positions given the
// offset of this unit's first character.
func (p SpellCursor) Absolute(offset int) []int {
	switch p {
	case SpellCursorDoubleSecond:
		return []int{offset + 1}
	case SpellCursorDoubleCombined:
		return []int{offset, offset + 1}
	default:
		return []int{offset}
	}
}

// SpellCursorPosition returns which spell characters the shared cursor
// is currently on, judged against the effective candidate.
func (c *Inflight) SpellCursorPosition() SpellCursor {
	effective := c.EffectiveCandidate()
	if c.cursor >= effective.Len() {
		// Fully typed but waiting for disambiguation: the cursor sits
		// at the end of the spell.
		switch {
		case effective.IsSplit():
			return SpellCursorDoubleSecond
		case c.spell.Kind() == KindDouble:
			return SpellCursorDoubleCombined
		default:
			return SpellCursorSingle
		}
	}
	if effective.IsSplit() {
		if effective.ElementIndexAt(c.cursor) == ElementSecond {
			return SpellCursorDoubleSecond
		}
		return SpellCursorDoubleFirst
	}
	if c.spell.Kind() == KindDouble {
		return SpellCursorDoubleCombined
	}
	return SpellCursorSingle
}

// SpellEndVector maps every log entry to the number of spell characters
// it finishes, or 0, judged against the effective candidate.
func (c *Inflight) SpellEndVector() []int {
	return spellEndVector(c.strokes, c.EffectiveCandidate(), c.spell.Count())
}

// WrongStrokesAt returns the wrong strokes attributed to the correct
// stroke at position idx.
func (c *Inflight) WrongStrokesAt(idx int) []keystroke.Stroke {
	return wrongStrokesAt(c.strokes, idx)
}

// WrongCountOfElement counts the wrong strokes charged to spell element
// idx of the effective candidate.
func (c *Inflight) WrongCountOfElement(idx ElementIndex) int {
	return wrongCountOfElement(c.strokes, c.EffectiveCandidate(), idx)
}

// IntoConfirmed consumes the unit. Panics unless the unit is confirmed.
func (c *Inflight) IntoConfirmed() *Confirmed {
	if !c.IsConfirmed() {
		panic("chunk: unit is not confirmed")
	}
	return &Confirmed{
		spell:     c.spell,
		candidate: c.live[0],
		retired:   c.retired,
		ideal:     c.ideal,
		strokes:   c.strokes,
	}
}
