// Package vocabulary models the words a query is assembled from: a view
// string as displayed, its reading split per view character, and the
// mapping between spell positions and view positions. It also splits a
// reading into the phonetic units the typing core consumes.
package vocabulary

import (
	"fmt"

	"romatype/internal/dict"
	"romatype/internal/keystroke"
	"romatype/internal/spell"
)

// SpellElement is the reading of one part of a view string. A normal
// element reads a single view character. A compound element reads a run
// of view characters that only has a joint reading (熟字訓), e.g.
// "きょう" for "今日".
type SpellElement struct {
	spell     spell.String
	viewCount int
}

// Normal builds the reading of a single view character.
func Normal(s spell.String) SpellElement {
	return SpellElement{spell: s, viewCount: 1}
}

// Compound builds the joint reading of viewCount view characters.
func Compound(s spell.String, viewCount int) SpellElement {
	if viewCount < 1 {
		panic("vocabulary: compound element must cover at least 1 view character")
	}
	return SpellElement{spell: s, viewCount: viewCount}
}

// Spell returns the element's reading.
func (e SpellElement) Spell() spell.String { return e.spell }

// ViewCount returns how many view characters the element reads.
func (e SpellElement) ViewCount() int { return e.viewCount }

// IsCompound reports whether the element is a joint reading of several
// view characters.
func (e SpellElement) IsCompound() bool { return e.viewCount > 1 }

// Entry is one vocabulary word: its view string and the readings of its
// parts, in view order.
type Entry struct {
	view   string
	spells []SpellElement
}

// NewEntry builds an entry, checking that the spell elements cover the
// view string exactly.
func NewEntry(view string, spells []SpellElement) (*Entry, error) {
	covered := 0
	for _, e := range spells {
		covered += e.viewCount
	}
	if viewLen := len([]rune(view)); viewLen != covered {
		return nil, fmt.Errorf("vocabulary: %q: %w (view %d, spells cover %d)",
			view, ErrViewSpellMismatch, viewLen, covered)
	}
	return &Entry{view: view, spells: spells}, nil
}

// View returns the displayed string.
func (e *Entry) View() string { return e.view }

// Spells returns the per-part readings.
func (e *Entry) Spells() []SpellElement { return e.spells }

// WholeSpell concatenates the readings into the entry's full reading.
func (e *Entry) WholeSpell() spell.String {
	var s spell.String
	for _, el := range e.spells {
		s += el.spell
	}
	return s
}

// Units splits the entry's whole reading into the phonetic units the
// typing core consumes. ASCII characters stand alone; otherwise the
// longer of the unigram and bigram covered by the dictionary wins, so
// "きょ" becomes one unit while "きお" becomes two.
func (e *Entry) Units(d *dict.Dictionary) ([]spell.String, error) {
	runes := e.WholeSpell().Runes()

	var units []spell.String
	for i := 0; i < len(runes); {
		uni := spell.String(runes[i])
		if keystroke.IsDisplayable(runes[i]) {
			units = append(units, uni)
			i++
			continue
		}
		if i+1 < len(runes) {
			bi := spell.String(runes[i : i+2])
			if d.Has(bi) {
				units = append(units, bi)
				i += 2
				continue
			}
		}
		if !d.Has(uni) {
			return nil, fmt.Errorf("vocabulary: %q: %w", uni, ErrUnitNotCovered)
		}
		units = append(units, uni)
		i++
	}
	return units, nil
}

// Info builds the query-time vocabulary info, recording how many units
// of the query belong to this entry.
func (e *Entry) Info(unitCount int) *Info {
	var positions []ViewPosition
	i := 0
	for _, el := range e.spells {
		if el.IsCompound() {
			span := make([]int, el.viewCount)
			for j := range span {
				span[j] = i + j
			}
			for range el.spell.Runes() {
				positions = append(positions, ViewPosition{positions: span})
			}
		} else {
			for range el.spell.Runes() {
				positions = append(positions, ViewPosition{positions: []int{i}})
			}
		}
		i += el.viewCount
	}
	return &Info{
		view:          e.view,
		spell:         e.WholeSpell(),
		viewPositions: positions,
		unitCount:     unitCount,
	}
}
