// Package dict provides the spelling dictionary: the ordered mapping from
// phonetic units (single characters or two-character clusters of a reading)
// to the literal key sequences that type them. A built-in romaji table is
// included; dictionaries can also be loaded from TOML, YAML, or JSON files
// and hot-reloaded.
package dict

import (
	"fmt"
	"sort"

	"romatype/internal/keystroke"
	"romatype/internal/spell"
)

// Dictionary maps phonetic-unit spells to their admissible key sequences.
// The order of the sequences is meaningful: earlier entries win ties when
// candidates of equal length compete.
//
// A Dictionary is immutable after construction and safe for concurrent
// reads.
type Dictionary struct {
	entries map[string][]keystroke.Sequence
}

// New builds a dictionary from raw entries, validating that every unit is
// a well-formed spell of one or two characters and every spelling is a
// strikeable key sequence.
func New(entries map[string][]string) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string][]keystroke.Sequence, len(entries))}
	for unit, spellings := range entries {
		ss, err := spell.New(unit)
		if err != nil {
			return nil, fmt.Errorf("dict: unit %q: %w", unit, err)
		}
		if n := ss.Count(); n < 1 || n > 2 {
			return nil, fmt.Errorf("dict: unit %q: %w", unit, ErrUnitLength)
		}
		if len(spellings) == 0 {
			return nil, fmt.Errorf("dict: unit %q: %w", unit, ErrNoSpellings)
		}
		seqs := make([]keystroke.Sequence, 0, len(spellings))
		for _, raw := range spellings {
			seq, err := keystroke.NewSequence(raw)
			if err != nil {
				return nil, fmt.Errorf("dict: unit %q spelling %q: %w", unit, raw, err)
			}
			if seq.Len() == 0 {
				return nil, fmt.Errorf("dict: unit %q: %w", unit, ErrEmptySpelling)
			}
			seqs = append(seqs, seq)
		}
		d.entries[unit] = seqs
	}
	return d, nil
}

// Spellings returns the ordered key sequences for unit, or nil when the
// unit is not covered.
func (d *Dictionary) Spellings(unit spell.String) []keystroke.Sequence {
	return d.entries[string(unit)]
}

// Has reports whether unit is covered by the dictionary.
func (d *Dictionary) Has(unit spell.String) bool {
	_, ok := d.entries[string(unit)]
	return ok
}

// Len returns the number of units the dictionary covers.
func (d *Dictionary) Len() int { return len(d.entries) }

// Units returns every covered unit, sorted for deterministic iteration.
func (d *Dictionary) Units() []spell.String {
	units := make([]spell.String, 0, len(d.entries))
	for unit := range d.entries {
		units = append(units, spell.String(unit))
	}
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })
	return units
}

// Merge returns a new dictionary with entries from other overriding or
// extending the receiver's.
func (d *Dictionary) Merge(other *Dictionary) *Dictionary {
	merged := make(map[string][]keystroke.Sequence, len(d.entries)+other.Len())
	for unit, seqs := range d.entries {
		merged[unit] = seqs
	}
	for unit, seqs := range other.entries {
		merged[unit] = seqs
	}
	return &Dictionary{entries: merged}
}
