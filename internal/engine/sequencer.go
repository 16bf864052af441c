package engine

import (
	"time"

	"romatype/internal/chunk"
	"romatype/internal/keystroke"
)

// sequencer drives the unit pipeline: a FIFO of unprocessed units, at
// most one inflight unit, and the list of confirmed ones. Confirming a
// unit activates the next with the head constraint the confirmed
// candidate imposes.
type sequencer struct {
	unprocessed []*chunk.Unprocessed
	inflight    *chunk.Inflight
	confirmed   []*chunk.Confirmed
}

func newSequencer(units []*chunk.Unprocessed) *sequencer {
	return &sequencer{unprocessed: units}
}

// isFinished reports whether every unit has been confirmed.
func (s *sequencer) isFinished() bool {
	return len(s.unprocessed) == 0 && s.inflight == nil
}

// appendUnits adds compiled units to the back of the pipeline. When the
// pipeline had drained, the first new unit is activated immediately,
// without a head constraint: a unit that once ended the query imposes
// none.
func (s *sequencer) appendUnits(units []*chunk.Unprocessed) {
	wasDrained := s.isFinished()
	s.unprocessed = append(s.unprocessed, units...)
	if wasDrained && len(s.unprocessed) > 0 {
		s.moveNext()
	}
}

// moveNext retires the inflight unit into the confirmed list and
// activates the head of the FIFO, filtered by the confirmed candidate's
// head constraint.
func (s *sequencer) moveNext() {
	var constraint *keystroke.Key
	if s.inflight != nil {
		conf := s.inflight.IntoConfirmed()
		if k, ok := conf.Constraint(); ok {
			constraint = &k
		}
		s.confirmed = append(s.confirmed, conf)
		s.inflight = nil
	}
	if len(s.unprocessed) > 0 {
		head := s.unprocessed[0]
		s.unprocessed = s.unprocessed[1:]
		s.inflight = head.IntoInflight(constraint)
	}
}

// stroke feeds one key stroke to the active unit and advances the
// pipeline when the stroke confirms it.
func (s *sequencer) stroke(elapsed time.Duration, key keystroke.Key) chunk.StrokeResult {
	if s.inflight == nil {
		panic("engine: stroke without an active unit")
	}
	res := s.inflight.Stroke(elapsed, key)
	s.advanceIfConfirmed(res)
	return res
}

func (s *sequencer) advanceIfConfirmed(res chunk.StrokeResult) {
	if s.inflight == nil || !s.inflight.IsConfirmed() {
		return
	}

	delayed := res.Kind == chunk.StrokeConfirmedDelayed
	s.moveNext()

	// A delayed confirmation hands its pending strokes to the next
	// unit; the replay can confirm that unit in turn.
	if delayed {
		if s.inflight == nil {
			panic("engine: delayed confirmation with no next unit")
		}
		for _, st := range res.Pending {
			r := s.inflight.Stroke(st.Elapsed(), st.Key())
			s.advanceIfConfirmed(r)
		}
	}
}

// lastStrokeElapsed returns the timestamp of the last stroke of the
// last confirmed unit.
func (s *sequencer) lastStrokeElapsed() (time.Duration, bool) {
	if len(s.confirmed) == 0 {
		return 0, false
	}
	strokes := s.confirmed[len(s.confirmed)-1].Strokes()
	if len(strokes) == 0 {
		return 0, false
	}
	return strokes[len(strokes)-1].Elapsed(), true
}
