// Package statistics accumulates per-target typing counters while a
// query is typed. Four target spaces are tracked: actual key strokes,
// ideal key strokes, spell characters, and units. The ideal key stroke
// space is a projection: when the typed candidate is longer than the
// ideal one, each actual stroke advances the ideal cursor by its
// weighted share.
package statistics

import (
	"time"
)

// Target is a snapshot of one target space's counters.
type Target struct {
	// Finished is how many targets have been typed to completion.
	Finished int
	// Whole is how many targets the query contains so far.
	Whole int
	// CompletelyCorrect is how many targets were finished without a
	// single miss.
	CompletelyCorrect int
	// Wrong is the miss count, duplicates included.
	Wrong int
}

// counter is the mutable backing of a Target.
type counter struct {
	finished          int
	whole             int
	completelyCorrect int
	wrong             int
}

func (c *counter) onFinished(delta int, completelyCorrect bool) {
	c.finished += delta
	if completelyCorrect {
		c.completelyCorrect += delta
	}
}

func (c *counter) onTargetAdd(delta int) { c.whole += delta }

func (c *counter) onWrong(delta int) { c.wrong += delta }

func (c *counter) snapshot() Target {
	return Target{
		Finished:          c.finished,
		Whole:             c.whole,
		CompletelyCorrect: c.completelyCorrect,
		Wrong:             c.wrong,
	}
}

// Snapshot is the state of all four target spaces.
type Snapshot struct {
	KeyStroke      Target
	IdealKeyStroke Target
	Spell          Target
	Unit           Target
}

// Tracker accumulates counters as the engine reports progress.
type Tracker struct {
	keyStroke      counter
	idealKeyStroke counter
	spell          counter
	unit           counter

	thisKeyStrokeWrong      bool
	thisIdealKeyStrokeWrong bool
	thisSpellWrong          bool
	thisUnitWrong           bool

	candidateCount      int
	idealCandidateCount int
	inCandidateCount    int

	lastElapsed time.Duration
	laps        *Laps
}

// NewTracker builds an empty tracker. spec may be zero for no laps.
func NewTracker(spec LapSpec) *Tracker {
	t := &Tracker{}
	if spec.Every > 0 {
		t.laps = &Laps{spec: spec}
	}
	return t
}

// SetCandidateCounts fixes, for the unit being typed, the length of the
// candidate actually typed and of the ideal candidate, so actual stroke
// positions can be projected into the ideal space.
func (t *Tracker) SetCandidateCounts(actual, ideal int) {
	t.candidateCount = actual
	t.idealCandidateCount = ideal
}

// idealIndex projects an actual in-candidate stroke index into the
// ideal candidate, rounding up so a started ideal stroke counts.
func (t *Tracker) idealIndex(actualIndex int) int {
	return ((actualIndex+1)*t.idealCandidateCount+t.candidateCount-1)/t.candidateCount - 1
}

// OnStroke records one actual stroke. spellCount is the number of spell
// characters the current unit covers, charged on a miss.
func (t *Tracker) OnStroke(elapsed time.Duration, correct bool, spellCount int) {
	t.lastElapsed = elapsed

	if correct {
		t.inCandidateKeyStroke()
	} else {
		t.keyStroke.onWrong(1)
		t.idealKeyStroke.onWrong(1)
		t.spell.onWrong(spellCount)
		t.unit.onWrong(1)

		t.thisIdealKeyStrokeWrong = true
		t.thisSpellWrong = true
		t.thisUnitWrong = true
	}
	t.thisKeyStrokeWrong = !correct
}

func (t *Tracker) inCandidateKeyStroke() {
	t.inCandidateCount++
	t.keyStroke.onFinished(1, !t.thisKeyStrokeWrong)
	t.recordLap(TargetKeyStroke)

	// The stroke finished an ideal key stroke when it moved the
	// projected index.
	newIndex := t.inCandidateCount
	if t.idealIndex(newIndex-1) != t.idealIndex(newIndex) {
		t.idealKeyStroke.onFinished(1, !t.thisIdealKeyStrokeWrong)
		t.thisIdealKeyStrokeWrong = false
		t.recordLap(TargetIdealKeyStroke)
	}
}

// FinishSpell records spellCount spell characters typed to completion.
func (t *Tracker) FinishSpell(spellCount int) {
	t.spell.onFinished(spellCount, !t.thisSpellWrong)
	t.thisSpellWrong = false
	t.recordLap(TargetSpell)
}

// FinishUnit records the current unit as confirmed, adding its totals
// to the whole counts.
func (t *Tracker) FinishUnit(actualWhole, idealWhole, spellCount int) {
	t.inCandidateCount = 0
	t.keyStroke.onTargetAdd(actualWhole)
	t.idealKeyStroke.onTargetAdd(idealWhole)
	t.spell.onTargetAdd(spellCount)
	t.unit.onFinished(1, !t.thisUnitWrong)
	t.unit.onTargetAdd(1)
	t.thisUnitWrong = false
	t.recordLap(TargetUnit)
}

// AddUnfinishedUnit adds a not-yet-typed unit's totals to the whole
// counts.
func (t *Tracker) AddUnfinishedUnit(actualWhole, idealWhole, spellCount int) {
	t.keyStroke.onTargetAdd(actualWhole)
	t.idealKeyStroke.onTargetAdd(idealWhole)
	t.spell.onTargetAdd(spellCount)
	t.unit.onTargetAdd(1)
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		KeyStroke:      t.keyStroke.snapshot(),
		IdealKeyStroke: t.idealKeyStroke.snapshot(),
		Spell:          t.spell.snapshot(),
		Unit:           t.unit.snapshot(),
	}
}

// LapMarks returns the laps recorded so far.
func (t *Tracker) LapMarks() []LapMark {
	if t.laps == nil {
		return nil
	}
	return t.laps.marks
}

func (t *Tracker) recordLap(kind TargetKind) {
	if t.laps == nil || t.laps.spec.Target != kind {
		return
	}
	finished := 0
	switch kind {
	case TargetKeyStroke:
		finished = t.keyStroke.finished
	case TargetIdealKeyStroke:
		finished = t.idealKeyStroke.finished
	case TargetSpell:
		finished = t.spell.finished
	case TargetUnit:
		finished = t.unit.finished
	}
	if finished%t.laps.spec.Every != 0 {
		return
	}
	t.laps.marks = append(t.laps.marks, LapMark{
		Elapsed:        t.lastElapsed,
		KeyStroke:      t.keyStroke.finished,
		IdealKeyStroke: t.idealKeyStroke.finished,
		Spell:          t.spell.finished,
		Unit:           t.unit.finished,
	})
}
