package chunk

import (
	"romatype/internal/keystroke"
)

// wrongStrokesAt returns the wrong strokes of the log attributed to the
// correct stroke at position idx: the wrong strokes typed after idx-1
// correct strokes and before the idx-th one landed.
func wrongStrokesAt(strokes []keystroke.Stroke, idx int) []keystroke.Stroke {
	var wrong []keystroke.Stroke
	correct := 0
	for _, s := range strokes {
		if s.Correct() {
			correct++
			continue
		}
		if correct == idx {
			wrong = append(wrong, s)
		}
	}
	return wrong
}

// wrongCountOfElement counts the wrong strokes of the log charged to
// spell element idx of candidate. A wrong stroke is charged to the
// correct position it precedes; trailing wrongs are charged to the last
// position.
func wrongCountOfElement(strokes []keystroke.Stroke, candidate *Candidate, idx ElementIndex) int {
	count := 0
	correct := 0
	last := candidate.Len() - 1
	for _, s := range strokes {
		if s.Correct() {
			correct++
			continue
		}
		attributed := correct
		if attributed > last {
			attributed = last
		}
		if candidate.ElementIndexAt(attributed) == idx {
			count++
		}
	}
	return count
}

// spellEndVector maps every log entry to the number of spell characters
// it finishes, or 0. Combined typing finishes the whole spell at once;
// split typing finishes one character per element end.
func spellEndVector(strokes []keystroke.Stroke, candidate *Candidate, spellCount int) []int {
	ends := make([]int, len(strokes))
	correct := 0
	for i, s := range strokes {
		if !s.Correct() {
			continue
		}
		if correct < candidate.Len() && candidate.IsElementEnd(correct) {
			if candidate.IsSplit() {
				ends[i] = 1
			} else {
				ends[i] = spellCount
			}
		}
		correct++
	}
	return ends
}
