package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerCountsCleanUnit(t *testing.T) {
	tr := NewTracker(LapSpec{})
	tr.SetCandidateCounts(2, 2)

	tr.OnStroke(100*time.Millisecond, true, 1)
	tr.OnStroke(200*time.Millisecond, true, 1)
	tr.FinishSpell(1)
	tr.FinishUnit(2, 2, 1)

	snap := tr.Snapshot()
	assert.Equal(t, Target{Finished: 2, Whole: 2, CompletelyCorrect: 2}, snap.KeyStroke)
	assert.Equal(t, Target{Finished: 2, Whole: 2, CompletelyCorrect: 2}, snap.IdealKeyStroke)
	assert.Equal(t, Target{Finished: 1, Whole: 1, CompletelyCorrect: 1}, snap.Spell)
	assert.Equal(t, Target{Finished: 1, Whole: 1, CompletelyCorrect: 1}, snap.Unit)
}

func TestTrackerProjectsIdealKeyStrokes(t *testing.T) {
	// Two actual strokes against a single-stroke ideal candidate: the
	// ideal key stroke finishes only with the second actual one.
	tr := NewTracker(LapSpec{})
	tr.SetCandidateCounts(2, 1)

	tr.OnStroke(100*time.Millisecond, true, 1)
	assert.Equal(t, 0, tr.Snapshot().IdealKeyStroke.Finished)

	tr.OnStroke(200*time.Millisecond, true, 1)
	assert.Equal(t, 1, tr.Snapshot().IdealKeyStroke.Finished)
	assert.Equal(t, 2, tr.Snapshot().KeyStroke.Finished)
}

func TestTrackerWrongStrokePoisonsTargets(t *testing.T) {
	tr := NewTracker(LapSpec{})
	tr.SetCandidateCounts(2, 2)

	tr.OnStroke(100*time.Millisecond, false, 2)
	tr.OnStroke(200*time.Millisecond, true, 2)
	tr.OnStroke(300*time.Millisecond, true, 2)
	tr.FinishSpell(2)
	tr.FinishUnit(2, 2, 2)

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.KeyStroke.Wrong)
	// A miss charges the spell wrong count once per covered character.
	assert.Equal(t, 2, snap.Spell.Wrong)
	assert.Equal(t, 1, snap.Unit.Wrong)

	// The first key stroke after the miss is not completely correct;
	// the second one is.
	assert.Equal(t, 1, snap.KeyStroke.CompletelyCorrect)
	assert.Equal(t, 0, snap.Spell.CompletelyCorrect)
	assert.Equal(t, 0, snap.Unit.CompletelyCorrect)
	assert.Equal(t, 1, snap.Unit.Finished)
}

func TestTrackerWrongFlagResetsPerTarget(t *testing.T) {
	tr := NewTracker(LapSpec{})
	tr.SetCandidateCounts(1, 1)
	tr.OnStroke(100*time.Millisecond, false, 1)
	tr.OnStroke(200*time.Millisecond, true, 1)
	tr.FinishSpell(1)
	tr.FinishUnit(1, 1, 1)

	// The next unit starts clean.
	tr.SetCandidateCounts(1, 1)
	tr.OnStroke(300*time.Millisecond, true, 1)
	tr.FinishSpell(1)
	tr.FinishUnit(1, 1, 1)

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.Spell.CompletelyCorrect)
	assert.Equal(t, 1, snap.Unit.CompletelyCorrect)
}

func TestTrackerAddsUnfinishedUnits(t *testing.T) {
	tr := NewTracker(LapSpec{})
	tr.AddUnfinishedUnit(3, 2, 1)
	tr.AddUnfinishedUnit(1, 1, 1)

	snap := tr.Snapshot()
	assert.Equal(t, Target{Whole: 4}, snap.KeyStroke)
	assert.Equal(t, Target{Whole: 3}, snap.IdealKeyStroke)
	assert.Equal(t, Target{Whole: 2}, snap.Spell)
	assert.Equal(t, Target{Whole: 2}, snap.Unit)
}

func TestTrackerRecordsLaps(t *testing.T) {
	tr := NewTracker(LapSpec{Target: TargetKeyStroke, Every: 2})
	tr.SetCandidateCounts(4, 4)

	tr.OnStroke(100*time.Millisecond, true, 1)
	tr.OnStroke(250*time.Millisecond, true, 1)
	tr.OnStroke(300*time.Millisecond, false, 1)
	tr.OnStroke(400*time.Millisecond, true, 1)
	tr.OnStroke(500*time.Millisecond, true, 1)

	marks := tr.LapMarks()
	require.Len(t, marks, 2)
	assert.Equal(t, 250*time.Millisecond, marks[0].Elapsed)
	assert.Equal(t, 2, marks[0].KeyStroke)
	assert.Equal(t, 500*time.Millisecond, marks[1].Elapsed)
	assert.Equal(t, 4, marks[1].KeyStroke)
}

func TestResultDerivedRates(t *testing.T) {
	snap := Snapshot{KeyStroke: Target{Finished: 30, Wrong: 10}}
	res := NewResult(10*time.Second, snap, nil, Skill{})

	assert.NotEqual(t, res.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.InDelta(t, 0.75, res.Accuracy(), 1e-9)
	assert.InDelta(t, 3.0, res.KeysPerSecond(), 1e-9)
}
