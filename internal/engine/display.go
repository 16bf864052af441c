package engine

import (
	"strings"

	"romatype/internal/chunk"
	"romatype/internal/keystroke"
	"romatype/internal/statistics"
)

// SpellDisplayInfo is what a frontend needs to render the spell line.
type SpellDisplayInfo struct {
	Text string
	// CursorPositions are the characters being typed right now. Combined
	// typing of a double spell puts the cursor on both of its characters.
	CursorPositions []int
	WrongPositions  []int
	// LastPosition is the final spell position of the query. A query
	// built under a key stroke budget can end mid vocabulary.
	LastPosition int
}

// KeyStrokeDisplayInfo is what a frontend needs to render the key
// stroke line.
type KeyStrokeDisplayInfo struct {
	Text           string
	Cursor         int
	WrongPositions []int
}

// DisplayInfo is a full snapshot for rendering: both display lines plus
// the statistics accumulated so far.
type DisplayInfo struct {
	Spell     SpellDisplayInfo
	KeyStroke KeyStrokeDisplayInfo
	Stats     statistics.Snapshot
	Laps      []statistics.LapMark
	Skill     statistics.Skill
}

// displayInfo rebuilds the rendering snapshot from scratch by walking
// confirmed units, then the inflight one, then the unprocessed tail.
// Statistics are replayed into a fresh tracker on every call so the
// snapshot never depends on when it is taken.
func (s *sequencer) displayInfo(lap statistics.LapSpec) *DisplayInfo {
	tracker := statistics.NewTracker(lap)
	skill := statistics.NewSkillTracker()

	var spellText, keyStrokeText strings.Builder
	spellHead := 0
	var spellCursors []int
	var spellWrong []int
	keyStrokeCursor := 0
	var keyStrokeWrong []int

	for _, conf := range s.confirmed {
		walked := walkUnit(
			tracker,
			conf.Spell(),
			conf.Candidate(),
			conf.Ideal(),
			conf.Strokes(),
			conf.SpellEndVector(),
			keyStrokeCursor,
			keyStrokeWrong,
		)
		keyStrokeWrong = walked.keyStrokeWrong
		keyStrokeCursor += walked.correctCount
		for _, st := range conf.Strokes() {
			skill.OnStroke(st)
		}

		spellWrong = appendWrongSpells(spellWrong, conf.Spell(), walked.wrongElements, spellHead)
		spellHead += conf.Spell().Count()

		keyStrokeText.WriteString(string(conf.Candidate().Whole()))
		spellText.WriteString(string(conf.Spell().String()))

		tracker.FinishUnit(conf.Candidate().Len(), conf.Ideal().Len(), conf.Spell().Count())
	}

	inf := s.inflight
	if inf == nil {
		spellCursors = []int{spellHead}
	} else {
		candidate := inf.EffectiveCandidate()
		walked := walkUnit(
			tracker,
			inf.Spell(),
			candidate,
			inf.Ideal(),
			inf.Strokes(),
			inf.SpellEndVector(),
			keyStrokeCursor,
			keyStrokeWrong,
		)
		keyStrokeWrong = walked.keyStrokeWrong
		keyStrokeCursor += inf.Cursor()
		for _, st := range inf.Strokes() {
			skill.OnStroke(st)
		}
		for _, st := range inf.PendingStrokes() {
			skill.OnStroke(st)
		}

		spellCursors = inf.SpellCursorPosition().Absolute(spellHead)
		spellWrong = appendWrongSpells(spellWrong, inf.Spell(), walked.wrongElements, spellHead)
		spellHead += inf.Spell().Count()

		// A fully typed delayed confirmable candidate parks the cursor
		// on the next unit's head; pending wrong strokes belong there
		// too.
		if inf.IsDelayedConfirmable() {
			if inf.WrongPendingCount() > 0 {
				keyStrokeWrong = append(keyStrokeWrong, keyStrokeCursor)
				spellWrong = append(spellWrong, spellHead)
			}
			spellCursors = []int{spellHead}
		}

		keyStrokeText.WriteString(string(candidate.Whole()))
		spellText.WriteString(string(inf.Spell().String()))

		tracker.AddUnfinishedUnit(candidate.Len(), inf.Ideal().Len(), inf.Spell().Count())
	}

	var constraint *keystroke.Key
	if inf != nil {
		if k, ok := inf.EffectiveCandidate().Constraint(); ok {
			constraint = &k
		}
	}
	for i, u := range s.unprocessed {
		candidate := u.MinCandidate(constraint)

		keyStrokeText.WriteString(string(candidate.Whole()))
		spellText.WriteString(string(u.Spell().String()))

		spellCount := u.Spell().Count()
		spellHead += spellCount

		// Strokes pending on a delayed confirmable unit will land in the
		// first unprocessed unit, so their statistics are charged there.
		if i == 0 && inf != nil && inf.IsDelayedConfirmable() {
			for _, st := range inf.PendingStrokes() {
				tracker.OnStroke(st.Elapsed(), st.Correct(), spellCount)
			}
		}

		// Whole counts for untouched units use the ideal candidate on
		// both sides; the constrained minimum only drives the display
		// text.
		idealLen := u.Ideal().Len()
		tracker.AddUnfinishedUnit(idealLen, idealLen, spellCount)

		if k, ok := candidate.Constraint(); ok {
			constraint = &k
		} else {
			constraint = nil
		}
	}

	return &DisplayInfo{
		Spell: SpellDisplayInfo{
			Text:            spellText.String(),
			CursorPositions: spellCursors,
			WrongPositions:  spellWrong,
			LastPosition:    spellHead - 1,
		},
		KeyStroke: KeyStrokeDisplayInfo{
			Text:           keyStrokeText.String(),
			Cursor:         keyStrokeCursor,
			WrongPositions: keyStrokeWrong,
		},
		Stats: tracker.Snapshot(),
		Laps:  tracker.LapMarks(),
		Skill: skill.Snapshot(),
	}
}

// walkedUnit is what replaying one unit's stroke log yields.
type walkedUnit struct {
	correctCount   int
	keyStrokeWrong []int
	// wrongElements has one entry per candidate element, true when a
	// wrong stroke was charged to it.
	wrongElements []bool
}

// walkUnit replays one unit's stroke log into the tracker and collects
// wrong positions. headOffset is the unit's first key stroke position
// in the whole query.
func walkUnit(
	tracker *statistics.Tracker,
	sp chunk.Spell,
	candidate *chunk.Candidate,
	ideal *chunk.Candidate,
	strokes []keystroke.Stroke,
	spellEnds []int,
	headOffset int,
	keyStrokeWrong []int,
) walkedUnit {
	spellCount := sp.Count()
	if candidate.IsSplit() {
		spellCount = 1
	}
	tracker.SetCandidateCounts(candidate.Len(), ideal.Len())

	elementCount := 1
	if candidate.IsSplit() {
		elementCount = 2
	}
	wrongElements := make([]bool, elementCount)

	correct := 0
	for i, st := range strokes {
		tracker.OnStroke(st.Elapsed(), st.Correct(), spellCount)
		if st.Correct() {
			correct++
			if spellEnds[i] > 0 {
				tracker.FinishSpell(spellEnds[i])
			}
			continue
		}

		pos := headOffset + correct
		if n := len(keyStrokeWrong); n == 0 || keyStrokeWrong[n-1] != pos {
			keyStrokeWrong = append(keyStrokeWrong, pos)
		}
		attributed := correct
		if attributed >= candidate.Len() {
			attributed = candidate.Len() - 1
		}
		wrongElements[candidate.ElementIndexAt(attributed)] = true
	}

	return walkedUnit{
		correctCount:   correct,
		keyStrokeWrong: keyStrokeWrong,
		wrongElements:  wrongElements,
	}
}

// appendWrongSpells marks the unit's spell characters that had a wrong
// stroke charged to them. Split typing judges each character by its own
// element, combined typing judges the whole spell at once.
func appendWrongSpells(spellWrong []int, sp chunk.Spell, wrongElements []bool, spellHead int) []int {
	for i := 0; i < sp.Count(); i++ {
		idx := 0
		if len(wrongElements) == 2 {
			idx = i
		}
		if wrongElements[idx] {
			spellWrong = append(spellWrong, spellHead+i)
		}
	}
	return spellWrong
}
