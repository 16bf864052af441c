package chunk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romatype/internal/keystroke"
)

func strokeAt(t *testing.T, c *Inflight, ms int, key rune) StrokeResult {
	t.Helper()
	return c.Stroke(time.Duration(ms)*time.Millisecond, keystroke.MustKey(key))
}

// ============================================================
// Ordinary confirmation
// ============================================================

func TestInflightGeminateOrdinaryPath(t *testing.T) {
	units := compileUnits(t, "っ", "か")

	first := units[0].IntoInflight(nil)
	res := strokeAt(t, first, 10, 'k')

	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.True(t, res.Confirmed)
	assert.Empty(t, res.Pending)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "っ", string(res.SpellFinished.Spell))
	assert.Equal(t, 0, res.SpellFinished.WrongCount)

	confirmed := first.IntoConfirmed()
	assert.Equal(t, "k", string(confirmed.Candidate().Whole()))
	assert.Equal(t, 1, confirmed.CorrectCount())

	k, ok := confirmed.Constraint()
	require.True(t, ok)
	assert.Equal(t, keystroke.MustKey('k'), k)

	second := units[1].IntoInflight(&k)
	assert.Equal(t, []string{"ka"}, wholes(second.LiveCandidates()))
	assert.Equal(t, []string{"ca"}, wholes(second.RetiredCandidates()))

	res = strokeAt(t, second, 20, 'k')
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.False(t, res.Confirmed)
	assert.Nil(t, res.SpellFinished)

	res = strokeAt(t, second, 30, 'a')
	assert.True(t, res.Confirmed)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "か", string(res.SpellFinished.Spell))
}

func TestInflightWrongStrokeChangesNothing(t *testing.T) {
	units := compileUnits(t, "っ", "か")
	c := units[0].IntoInflight(nil)

	res := strokeAt(t, c, 10, 'z')
	assert.Equal(t, StrokeWrong, res.Kind)
	assert.False(t, res.Confirmed)
	assert.Len(t, c.LiveCandidates(), 5)
	assert.Equal(t, 0, c.Cursor())
	require.Len(t, c.Strokes(), 1)
	assert.False(t, c.Strokes()[0].Correct())

	res = strokeAt(t, c, 20, 'k')
	assert.Equal(t, StrokeCorrect, res.Kind)
	// The earlier miss is attributed to this position.
	assert.Len(t, res.Wrong, 1)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, 1, res.SpellFinished.WrongCount)
}

// ============================================================
// Delayed confirmation
// ============================================================

func TestInflightNasalDelayedConfirmation(t *testing.T) {
	units := compileUnits(t, "ん", "じ")
	first := units[0].IntoInflight(nil)

	res := strokeAt(t, first, 10, 'n')
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.False(t, res.Confirmed)
	// Confirmation is pending, so the spell is not finished yet.
	assert.Nil(t, res.SpellFinished)
	assert.True(t, first.IsDelayedConfirmable())
	assert.Equal(t, []string{"n", "nn"}, wholes(first.LiveCandidates()))
	assert.Equal(t, []string{"xn"}, wholes(first.RetiredCandidates()))

	res = strokeAt(t, first, 20, 'j')
	assert.Equal(t, StrokeConfirmedDelayed, res.Kind)
	assert.True(t, res.Confirmed)
	require.Len(t, res.Pending, 1)
	assert.Equal(t, keystroke.MustKey('j'), res.Pending[0].Key())
	assert.True(t, res.Pending[0].Correct())
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "ん", string(res.SpellFinished.Spell))

	confirmed := first.IntoConfirmed()
	assert.Equal(t, "n", string(confirmed.Candidate().Whole()))
	// The disambiguation stroke is not in this unit's log.
	assert.Equal(t, 1, confirmed.CorrectCount())

	// Replaying the pending stroke drives the next unit.
	second := units[1].IntoInflight(nil)
	res = second.Stroke(res.Pending[0].Elapsed(), res.Pending[0].Key())
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.Equal(t, []string{"ji"}, wholes(second.LiveCandidates()))
}

func TestInflightNasalLongerSiblingWins(t *testing.T) {
	units := compileUnits(t, "ん", "じ")
	first := units[0].IntoInflight(nil)

	strokeAt(t, first, 10, 'n')
	res := strokeAt(t, first, 20, 'n')

	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.True(t, res.Confirmed)
	assert.Empty(t, res.Pending)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "ん", string(res.SpellFinished.Spell))

	confirmed := first.IntoConfirmed()
	assert.Equal(t, "nn", string(confirmed.Candidate().Whole()))
	// The buffered second stroke was drained into the unit's own log.
	assert.Equal(t, 2, confirmed.CorrectCount())
}

func TestInflightWrongStrokesWhileDelayedGoToPending(t *testing.T) {
	units := compileUnits(t, "ん", "じ")
	first := units[0].IntoInflight(nil)

	strokeAt(t, first, 10, 'n')
	res := strokeAt(t, first, 20, 'q')
	assert.Equal(t, StrokeWrong, res.Kind)
	// The miss is undecided: it may belong to the next unit.
	assert.Len(t, first.Strokes(), 1)
	assert.Len(t, first.PendingStrokes(), 1)
	assert.Equal(t, 1, first.WrongPendingCount())

	res = strokeAt(t, first, 30, 'j')
	assert.Equal(t, StrokeConfirmedDelayed, res.Kind)
	require.Len(t, res.Pending, 2)
	assert.False(t, res.Pending[0].Correct())
	assert.True(t, res.Pending[1].Correct())
}

func TestInflightGeminateLightConsonantDelayed(t *testing.T) {
	units := compileUnits(t, "っ", "っ")
	first := units[0].IntoInflight(nil)

	res := strokeAt(t, first, 10, 'l')
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.False(t, res.Confirmed)
	// "l" may still grow into "ltu" or "ltsu".
	assert.True(t, first.IsDelayedConfirmable())

	res = strokeAt(t, first, 20, 'l')
	assert.Equal(t, StrokeConfirmedDelayed, res.Kind)
	require.Len(t, res.Pending, 1)

	confirmed := first.IntoConfirmed()
	assert.Equal(t, "l", string(confirmed.Candidate().Whole()))
}

func TestInflightGeminateEscapeAfterLight(t *testing.T) {
	units := compileUnits(t, "っ", "っ")
	first := units[0].IntoInflight(nil)

	strokeAt(t, first, 10, 'l')
	res := strokeAt(t, first, 20, 't')
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.False(t, res.Confirmed)
	assert.Equal(t, []string{"ltu", "ltsu"}, wholes(first.LiveCandidates()))

	res = strokeAt(t, first, 30, 'u')
	assert.Equal(t, StrokeCorrect, res.Kind)
	assert.True(t, res.Confirmed)
	assert.Equal(t, "ltu", string(first.IntoConfirmed().Candidate().Whole()))
}

// ============================================================
// Split typing of a double spell
// ============================================================

func TestInflightSplitTyping(t *testing.T) {
	units := compileUnits(t, "じょ")
	c := units[0].IntoInflight(nil)

	assert.Equal(t, SpellCursorDoubleCombined, c.SpellCursorPosition())

	strokeAt(t, c, 10, 'z')
	res := strokeAt(t, c, 20, 'i')
	assert.Equal(t, StrokeCorrect, res.Kind)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "じ", string(res.SpellFinished.Spell))
	assert.Equal(t, []string{"zilyo", "zixyo"}, wholes(c.LiveCandidates()))
	assert.Equal(t, SpellCursorDoubleSecond, c.SpellCursorPosition())

	strokeAt(t, c, 30, 'l')
	strokeAt(t, c, 40, 'y')
	res = strokeAt(t, c, 50, 'o')
	assert.True(t, res.Confirmed)
	require.NotNil(t, res.SpellFinished)
	assert.Equal(t, "ょ", string(res.SpellFinished.Spell))
}

// ============================================================
// Invariants
// ============================================================

func TestInflightMonotoneElimination(t *testing.T) {
	units := compileUnits(t, "し")
	c := units[0].IntoInflight(nil)

	prev := len(c.LiveCandidates())
	for _, key := range []rune{'q', 's', 'q', 'h', 'i'} {
		strokeAt(t, c, 10, key)
		cur := len(c.LiveCandidates())
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.True(t, c.IsConfirmed())
	assert.Equal(t, "shi", string(c.IntoConfirmed().Candidate().Whole()))
}

func TestInflightStrokeOnConfirmedPanics(t *testing.T) {
	units := compileUnits(t, "か")
	c := units[0].IntoInflight(nil)
	strokeAt(t, c, 10, 'k')
	strokeAt(t, c, 20, 'a')

	assert.Panics(t, func() { strokeAt(t, c, 30, 'x') })
}

func TestInflightTimeRegressionPanics(t *testing.T) {
	units := compileUnits(t, "か")
	c := units[0].IntoInflight(nil)
	strokeAt(t, c, 20, 'k')

	assert.Panics(t, func() { strokeAt(t, c, 10, 'a') })
}

func TestInflightConvertBeforeConfirmationPanics(t *testing.T) {
	units := compileUnits(t, "か")
	c := units[0].IntoInflight(nil)

	assert.Panics(t, func() { c.IntoConfirmed() })
}
