package chunk

import (
	"fmt"
	"sort"

	"romatype/internal/dict"
	"romatype/internal/keystroke"
	"romatype/internal/spell"
)

// nextUnit is the lookahead state threaded through the reverse pass:
// the already-compiled successor's spell and the unique first keys of
// its candidates, in candidate order.
type nextUnit struct {
	spell    Spell
	headKeys []keystroke.Key
}

// Compile turns an ordered unit spell list into unprocessed units with
// full candidate sets and ideal candidates assigned.
//
// Candidates are built right to left because the legal spellings of the
// nasal unit "ん" and the geminate marker "っ" depend on the unit that
// follows. Ideal candidates are then chosen left to right because the
// shortest admissible spelling depends on the head constraint inherited
// from the previous unit's chosen candidate.
func Compile(units []spell.String, d *dict.Dictionary) ([]*Unprocessed, error) {
	out := make([]*Unprocessed, len(units))

	var next *nextUnit
	for i := len(units) - 1; i >= 0; i-- {
		sp, err := NewSpell(units[i])
		if err != nil {
			return nil, fmt.Errorf("unit %d %q: %w", i, units[i], err)
		}
		candidates, err := buildCandidates(sp, next, d)
		if err != nil {
			return nil, fmt.Errorf("unit %d %q: %w", i, units[i], err)
		}
		sortCandidates(candidates)
		out[i] = &Unprocessed{spell: sp, candidates: candidates}
		next = &nextUnit{spell: sp, headKeys: headKeysOf(candidates)}
	}

	assignIdeals(out)
	return out, nil
}

// sortCandidates sorts ascending by key stroke count, keeping the
// generation order for equal lengths.
func sortCandidates(candidates []*Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Len() < candidates[j].Len()
	})
}

// headKeysOf returns the unique first key strokes of the candidates, in
// candidate order.
func headKeysOf(candidates []*Candidate) []keystroke.Key {
	var keys []keystroke.Key
	seen := make(map[keystroke.Key]bool)
	for _, c := range candidates {
		k := c.KeyAt(0)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func buildCandidates(sp Spell, next *nextUnit, d *dict.Dictionary) ([]*Candidate, error) {
	switch sp.Kind() {
	case KindLiteral:
		seq := keystroke.Sequence(sp.String())
		return []*Candidate{NewCandidate([]keystroke.Sequence{seq}, nil, nil)}, nil

	case KindSingle:
		spellings := d.Spellings(sp.String())
		if spellings == nil {
			return nil, ErrUnitNotCovered
		}
		switch string(sp.String()) {
		case "ん":
			return nasalCandidates(spellings, next), nil
		case "っ":
			return geminateCandidates(spellings, next), nil
		}
		return plainCandidates(spellings), nil

	case KindDouble:
		combined := d.Spellings(sp.String())
		first := d.Spellings(sp.FirstHalf())
		second := d.Spellings(sp.SecondHalf())
		if combined == nil && (first == nil || second == nil) {
			return nil, ErrUnitNotCovered
		}
		candidates := plainCandidates(combined)
		for _, f := range first {
			for _, s := range second {
				candidates = append(candidates, NewCandidate([]keystroke.Sequence{f, s}, nil, nil))
			}
		}
		return candidates, nil
	}
	panic("chunk: unreachable spell kind")
}

func plainCandidates(spellings []keystroke.Sequence) []*Candidate {
	candidates := make([]*Candidate, 0, len(spellings))
	for _, s := range spellings {
		candidates = append(candidates, NewCandidate([]keystroke.Sequence{s}, nil, nil))
	}
	return candidates
}

// nasalAvailability is the outcome of the single-letter "n" legality
// check against the successor's opening key strokes.
type nasalAvailability int

const (
	nasalCannot nasalAvailability = iota
	nasalAll
	nasalPartial
)

// singleNasalAvailability decides whether "ん" may be typed with the
// bare "n". The single letter is ambiguous when the successor can open
// with a vowel, "y", or another "n", so:
//
//   - no successor, or an ASCII successor: unavailable.
//   - every successor opener survives the vowel/y/n filter: fully
//     available; any opener later disambiguates.
//   - exactly one opener survives: available only when the successor is
//     actually typed starting with that opener.
//   - none survive: unavailable.
func singleNasalAvailability(next *nextUnit) (nasalAvailability, keystroke.Key) {
	if next == nil || next.spell.Kind() == KindLiteral {
		return nasalCannot, 0
	}
	var filtered []keystroke.Key
	for _, k := range next.headKeys {
		switch k {
		case 'a', 'i', 'u', 'e', 'o', 'y', 'n':
		default:
			filtered = append(filtered, k)
		}
	}
	switch {
	case len(filtered) == 0:
		return nasalCannot, 0
	case len(filtered) == len(next.headKeys):
		return nasalAll, 0
	case len(filtered) == 1:
		return nasalPartial, filtered[0]
	}
	panic("chunk: ambiguous partial availability of single-letter nasal candidate")
}

func nasalCandidates(spellings []keystroke.Sequence, next *nextUnit) []*Candidate {
	candidates := make([]*Candidate, 0, len(spellings))
	for _, s := range spellings {
		if s.Len() != 1 {
			candidates = append(candidates, NewCandidate([]keystroke.Sequence{s}, nil, nil))
			continue
		}
		switch avail, key := singleNasalAvailability(next); avail {
		case nasalCannot:
			// Single letter omitted; only the multi-letter escapes remain.
		case nasalAll:
			delayed := NewDelayed(next.headKeys)
			candidates = append(candidates, NewCandidate([]keystroke.Sequence{s}, nil, delayed))
		case nasalPartial:
			k := key
			delayed := NewDelayed([]keystroke.Key{k})
			candidates = append(candidates, NewCandidate([]keystroke.Sequence{s}, &k, delayed))
		}
	}
	return candidates
}

// geminateCandidates builds candidates for the geminate marker "っ".
// The fixed multi-letter escapes from the dictionary are always legal.
// Additionally the marker can be typed by doubling the successor's
// opening consonant, which constrains the successor to open with that
// consonant. The small-kana prefixes "l" and "x" double as escape
// prefixes ("ltu", "xtu", "ltsu"), so their single-letter candidates
// need delayed confirmation.
func geminateCandidates(spellings []keystroke.Sequence, next *nextUnit) []*Candidate {
	var candidates []*Candidate
	if next != nil && next.spell.Kind() != KindLiteral {
		for _, k := range next.headKeys {
			switch k {
			case 'a', 'i', 'u', 'e', 'o', 'n':
				continue
			}
			key := k
			var delayed *Delayed
			if k == 'l' || k == 'x' {
				delayed = NewDelayed([]keystroke.Key{k})
			}
			candidates = append(candidates, NewCandidate(
				[]keystroke.Sequence{keystroke.Sequence(rune(k))}, &key, delayed))
		}
	}
	candidates = append(candidates, plainCandidates(spellings)...)
	return candidates
}

// assignIdeals is the forward pass: per unit, the shortest candidate
// whose first key stroke satisfies the constraint inherited from the
// previous unit's chosen candidate. The candidate list is already
// length-sorted, so the first satisfying candidate wins.
func assignIdeals(units []*Unprocessed) {
	var inherited *keystroke.Key
	for _, u := range units {
		var chosen *Candidate
		for _, c := range u.candidates {
			if inherited == nil || c.HeadSatisfies(*inherited) {
				chosen = c
				break
			}
		}
		if chosen == nil {
			panic("chunk: no candidate satisfies the inherited head constraint")
		}
		u.ideal = chosen
		if k, ok := chosen.Constraint(); ok {
			k := k
			inherited = &k
		} else {
			inherited = nil
		}
	}
}
