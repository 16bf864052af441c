package vocabulary

import (
	"romatype/internal/spell"
)

// ViewPosition is the view-string position(s) one spell character maps
// to. A normal reading maps to exactly one view character; a compound
// reading maps every spell character to the whole covered span.
type ViewPosition struct {
	positions []int
}

// Positions returns the covered view indexes.
func (p ViewPosition) Positions() []int { return p.positions }

// Last returns the last covered view index.
func (p ViewPosition) Last() int { return p.positions[len(p.positions)-1] }

// Offset returns the position shifted right by n view characters.
func (p ViewPosition) Offset(n int) ViewPosition {
	shifted := make([]int, len(p.positions))
	for i, pos := range p.positions {
		shifted[i] = pos + n
	}
	return ViewPosition{positions: shifted}
}

// Info is one vocabulary as it appears in an assembled query: the view,
// the full reading, the spell-to-view position mapping, and how many
// phonetic units of the query the entry contributes.
type Info struct {
	view          string
	spell         spell.String
	viewPositions []ViewPosition
	unitCount     int
}

// NewInfo builds an Info directly; most callers use Entry.Info.
func NewInfo(view string, sp spell.String, viewPositions []ViewPosition, unitCount int) *Info {
	return &Info{view: view, spell: sp, viewPositions: viewPositions, unitCount: unitCount}
}

// View returns the displayed string.
func (v *Info) View() string { return v.view }

// Spell returns the full reading.
func (v *Info) Spell() spell.String { return v.spell }

// ViewPositions returns the view position of each spell character.
func (v *Info) ViewPositions() []ViewPosition { return v.viewPositions }

// UnitCount returns how many phonetic units the entry contributes.
func (v *Info) UnitCount() int { return v.unitCount }

// SetUnitCount overrides the unit count, used when a query budget cuts
// the last vocabulary short.
func (v *Info) SetUnitCount(n int) { v.unitCount = n }

// ConcatViewPositions concatenates the spell-to-view mappings of infos,
// offsetting each by the accumulated view length.
func ConcatViewPositions(infos []*Info) []ViewPosition {
	var out []ViewPosition
	offset := 0
	for _, info := range infos {
		for _, p := range info.viewPositions {
			out = append(out, p.Offset(offset))
		}
		offset += len([]rune(info.view))
	}
	return out
}

// ViewPositionsForSpell maps spell positions onto view positions using
// the concatenated mapping. Positions past the end of the mapping, such
// as a cursor sitting beyond the final character, clamp to the last
// entry.
func ViewPositionsForSpell(spellPositions []int, mapping []ViewPosition) []int {
	var out []int
	for _, sp := range spellPositions {
		p := mapping[len(mapping)-1]
		if sp < len(mapping) {
			p = mapping[sp]
		}
		out = append(out, p.positions...)
	}
	return out
}
