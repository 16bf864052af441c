package statistics

import (
	"time"

	"github.com/google/uuid"
)

// Result is the final record of a finished typing session.
type Result struct {
	// ID uniquely names the session so results can be stored and
	// referenced later.
	ID uuid.UUID `json:"id"`

	// Elapsed is the total time from the first stroke opportunity to
	// the confirming stroke.
	Elapsed time.Duration `json:"elapsed"`

	KeyStroke      Target `json:"key_stroke"`
	IdealKeyStroke Target `json:"ideal_key_stroke"`
	Spell          Target `json:"spell"`
	Unit           Target `json:"unit"`

	Laps []LapMark `json:"laps,omitempty"`

	// Skill is the per-key breakdown of the session.
	Skill Skill `json:"skill"`
}

// NewResult seals a snapshot into a session result.
func NewResult(elapsed time.Duration, snap Snapshot, laps []LapMark, skill Skill) Result {
	return Result{
		ID:             uuid.New(),
		Elapsed:        elapsed,
		KeyStroke:      snap.KeyStroke,
		IdealKeyStroke: snap.IdealKeyStroke,
		Spell:          snap.Spell,
		Unit:           snap.Unit,
		Laps:           laps,
		Skill:          skill,
	}
}

// Accuracy is the fraction of strokes that were correct, in [0, 1].
// A session without strokes reports 1.
func (r Result) Accuracy() float64 {
	total := r.KeyStroke.Finished + r.KeyStroke.Wrong
	if total == 0 {
		return 1
	}
	return float64(r.KeyStroke.Finished) / float64(total)
}

// KeysPerSecond is the correct stroke rate over the whole session.
func (r Result) KeysPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.KeyStroke.Finished) / r.Elapsed.Seconds()
}
