package statistics

import "time"

// TargetKind names one of the tracked target spaces.
type TargetKind int

const (
	TargetKeyStroke TargetKind = iota
	TargetIdealKeyStroke
	TargetSpell
	TargetUnit
)

// String implements fmt.Stringer.
func (k TargetKind) String() string {
	switch k {
	case TargetKeyStroke:
		return "key_stroke"
	case TargetIdealKeyStroke:
		return "ideal_key_stroke"
	case TargetSpell:
		return "spell"
	case TargetUnit:
		return "unit"
	}
	return "unknown"
}

// LapSpec asks for a lap mark every Every finished targets of the
// given kind. A zero Every disables laps.
type LapSpec struct {
	Target TargetKind
	Every  int
}

// Laps collects lap marks as the tracked target advances.
type Laps struct {
	spec  LapSpec
	marks []LapMark
}

// LapMark records where the typist was when a lap boundary was crossed.
// The counts are finished counts in each target space at that moment,
// so a mark's position in space X is its count minus one.
type LapMark struct {
	Elapsed        time.Duration
	KeyStroke      int
	IdealKeyStroke int
	Spell          int
	Unit           int
}
