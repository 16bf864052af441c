// Package query assembles typing queries: it selects vocabulary entries
// by a quantifier policy, joins them with a separator, splits the
// readings into phonetic units, and compiles the unit list into typing
// chunks, truncating the tail to fit a key stroke budget.
package query

import (
	"romatype/internal/chunk"
	"romatype/internal/dict"
	"romatype/internal/keystroke"
	"romatype/internal/spell"
	"romatype/internal/vocabulary"
)

// QuantifierKind selects how much vocabulary a query contains.
type QuantifierKind int

const (
	// ByKeyStrokes budgets the query by ideal key stroke count; the
	// last unit is truncated to land exactly on the budget.
	ByKeyStrokes QuantifierKind = iota
	// ByVocabularies budgets the query by entry count, separators
	// included.
	ByVocabularies
)

// Quantifier is the query size policy.
type Quantifier struct {
	kind QuantifierKind
	n    int
}

// KeyStrokes quantifies a query by key stroke budget n.
func KeyStrokes(n int) Quantifier { return Quantifier{kind: ByKeyStrokes, n: n} }

// Vocabularies quantifies a query by entry count n.
func Vocabularies(n int) Quantifier { return Quantifier{kind: ByVocabularies, n: n} }

// Separator is what gets inserted between selected entries.
type Separator struct {
	entry *vocabulary.Entry
}

// NoSeparator joins entries directly.
func NoSeparator() Separator { return Separator{} }

// WhiteSpaceSeparator inserts a single space between entries.
func WhiteSpaceSeparator() Separator {
	sp := spell.MustNew(" ")
	entry, err := vocabulary.NewEntry(" ", []vocabulary.SpellElement{vocabulary.Normal(sp)})
	if err != nil {
		panic("query: build whitespace separator: " + err.Error())
	}
	return Separator{entry: entry}
}

// EntrySeparator inserts the given entry between entries.
func EntrySeparator(entry *vocabulary.Entry) Separator { return Separator{entry: entry} }

// Request describes a query to build.
type Request struct {
	Entries    []*vocabulary.Entry
	Quantifier Quantifier
	Separator  Separator
	Order      Order
}

// Query is an assembled typing query: the vocabulary as displayed plus
// the compiled unit list the engine consumes.
type Query struct {
	infos []*vocabulary.Info
	units []*chunk.Unprocessed
}

// VocabularyInfos returns the query's vocabulary in order.
func (q *Query) VocabularyInfos() []*vocabulary.Info { return q.infos }

// Units returns the compiled units in order.
func (q *Query) Units() []*chunk.Unprocessed { return q.units }

// Build assembles a query from the request against the dictionary.
func (r Request) Build(d *dict.Dictionary) (*Query, error) {
	if len(r.Entries) == 0 {
		return nil, ErrNoEntries
	}
	if r.Quantifier.n <= 0 {
		return nil, ErrQuantifier
	}
	order := r.Order
	if order == nil {
		order = InOrder()
	}

	gen := &generator{entries: r.Entries, separator: r.Separator.entry, order: order}

	switch r.Quantifier.kind {
	case ByKeyStrokes:
		return buildByKeyStrokes(r.Quantifier.n, gen, d)
	case ByVocabularies:
		return buildByVocabularies(r.Quantifier.n, gen, d)
	}
	panic("query: unreachable quantifier kind")
}

func buildByVocabularies(count int, gen *generator, d *dict.Dictionary) (*Query, error) {
	var infos []*vocabulary.Info
	var units []spell.String

	for picked := 0; picked < count; picked++ {
		entry := gen.next()
		entryUnits, err := entry.Units(d)
		if err != nil {
			return nil, err
		}
		infos = append(infos, entry.Info(len(entryUnits)))
		units = append(units, entryUnits...)
	}

	compiled, err := chunk.Compile(units, d)
	if err != nil {
		return nil, err
	}
	return &Query{infos: infos, units: compiled}, nil
}

func buildByKeyStrokes(budget int, gen *generator, d *dict.Dictionary) (*Query, error) {
	var infos []*vocabulary.Info
	var units []spell.String

	// Selection works on a per-unit lower bound: context effects can
	// only shorten a unit further, never lengthen it, so the loop never
	// stops short of the budget.
	estimated := 0
	for estimated < budget {
		entry := gen.next()
		entryUnits, err := entry.Units(d)
		if err != nil {
			return nil, err
		}
		infos = append(infos, entry.Info(len(entryUnits)))
		for _, u := range entryUnits {
			estimated += estimateMinStrokes(u, d)
			units = append(units, u)
		}
	}

	// Key strokes are assigned only once the full unit list is known,
	// because neighbors decide what is legal.
	compiled, err := chunk.Compile(units, d)
	if err != nil {
		return nil, err
	}

	// Cut after the unit that first reaches the budget.
	actual := 0
	kept := 0
	for _, u := range compiled {
		if actual >= budget {
			break
		}
		actual += u.MinLen()
		kept++
	}
	compiled = compiled[:kept]

	last := compiled[len(compiled)-1]
	over := actual - budget
	last.StrictKeyStrokeCount(last.MinLen() - over)

	infos = trimInfos(infos, len(compiled))
	return &Query{infos: infos, units: compiled}, nil
}

// trimInfos drops vocabulary infos made unit-less by the cut and fixes
// the last one's unit count.
func trimInfos(infos []*vocabulary.Info, totalUnits int) []*vocabulary.Info {
	kept := 0
	count := 0
	over := 0
	for _, info := range infos {
		if count >= totalUnits {
			break
		}
		count += info.UnitCount()
		if count >= totalUnits {
			over = count - totalUnits
		}
		kept++
	}
	infos = infos[:kept]
	last := infos[len(infos)-1]
	last.SetUnitCount(last.UnitCount() - over)
	return infos
}

// estimateMinStrokes is a context-free lower bound on the strokes a
// unit can take. The nasal and geminate units can collapse to a single
// consonant depending on the successor.
func estimateMinStrokes(unit spell.String, d *dict.Dictionary) int {
	switch string(unit) {
	case "ん", "っ":
		return 1
	}
	runes := unit.Runes()
	if unit.ContainsDisplayableASCII() {
		return len(runes)
	}
	min := 0
	if spellings := d.Spellings(unit); spellings != nil {
		min = minSeqLen(spellings)
	}
	if len(runes) == 2 {
		first := d.Spellings(spell.String(runes[0]))
		second := d.Spellings(spell.String(runes[1]))
		if first != nil && second != nil {
			if split := minSeqLen(first) + minSeqLen(second); min == 0 || split < min {
				min = split
			}
		}
	}
	if min == 0 {
		// Compile will surface the missing coverage as an error.
		return 1
	}
	return min
}

func minSeqLen(seqs []keystroke.Sequence) int {
	min := seqs[0].Len()
	for _, s := range seqs[1:] {
		if s.Len() < min {
			min = s.Len()
		}
	}
	return min
}

// generator alternates between picking the next entry by order policy
// and emitting the separator.
type generator struct {
	entries   []*vocabulary.Entry
	separator *vocabulary.Entry
	order     Order

	prev     int
	hasPrev  bool
	prevWord bool
}

func (g *generator) next() *vocabulary.Entry {
	if g.prevWord && g.separator != nil {
		g.prevWord = false
		return g.separator
	}
	g.prevWord = true
	idx := g.order.Next(g.prev, g.hasPrev, len(g.entries))
	g.prev = idx
	g.hasPrev = true
	return g.entries[idx]
}
