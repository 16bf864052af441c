package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romatype/internal/dict"
	"romatype/internal/vocabulary"
)

func entryOf(t *testing.T, line string) *vocabulary.Entry {
	t.Helper()
	entry, err := vocabulary.ParseLine(line)
	require.NoError(t, err)
	return entry
}

func unitSpells(q *Query) []string {
	var out []string
	for _, u := range q.Units() {
		out = append(out, string(u.Spell().String()))
	}
	return out
}

func TestBuildByVocabularyCount(t *testing.T) {
	req := Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "頑張る:がん,ば,る")},
		Quantifier: Vocabularies(1),
		Separator:  NoSeparator(),
		Order:      InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	assert.Equal(t, []string{"が", "ん", "ば", "る"}, unitSpells(q))
	require.Len(t, q.VocabularyInfos(), 1)
	assert.Equal(t, 4, q.VocabularyInfos()[0].UnitCount())

	// ん before ば can be typed with the bare "n".
	assert.Equal(t, "n", string(q.Units()[1].Ideal().Whole()))
}

func TestBuildCyclesInOrder(t *testing.T) {
	req := Request{
		Entries: []*vocabulary.Entry{
			entryOf(t, "あ:あ"),
			entryOf(t, "い:い"),
		},
		Quantifier: Vocabularies(3),
		Separator:  NoSeparator(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	assert.Equal(t, []string{"あ", "い", "あ"}, unitSpells(q))
}

func TestBuildSeparatorCountsTowardQuantifier(t *testing.T) {
	req := Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "あ:あ")},
		Quantifier: Vocabularies(3),
		Separator:  WhiteSpaceSeparator(),
		Order:      InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	assert.Equal(t, []string{"あ", " ", "あ"}, unitSpells(q))
	require.Len(t, q.VocabularyInfos(), 3)
	assert.Equal(t, " ", q.VocabularyInfos()[1].View())
}

func TestBuildByKeyStrokesTruncatesLastUnit(t *testing.T) {
	req := Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "ジョー:じ,ょ,ー")},
		Quantifier: KeyStrokes(1),
		Separator:  NoSeparator(),
		Order:      InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	require.Len(t, q.Units(), 1)
	last := q.Units()[0]
	var wholes []string
	for _, c := range last.Candidates() {
		wholes = append(wholes, string(c.Whole()))
	}
	assert.Equal(t, []string{"j", "z"}, wholes)

	require.Len(t, q.VocabularyInfos(), 1)
	assert.Equal(t, 1, q.VocabularyInfos()[0].UnitCount())
}

func TestBuildByKeyStrokesCrossesEntries(t *testing.T) {
	req := Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "し:し")},
		Quantifier: KeyStrokes(3),
		Separator:  NoSeparator(),
		Order:      InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	assert.Equal(t, []string{"し", "し"}, unitSpells(q))

	last := q.Units()[1]
	var wholes []string
	for _, c := range last.Candidates() {
		wholes = append(wholes, string(c.Whole()))
	}
	assert.Equal(t, []string{"s", "c"}, wholes)
}

func TestBuildExactBudgetKeepsLastUnitWhole(t *testing.T) {
	req := Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "か:か")},
		Quantifier: KeyStrokes(2),
		Separator:  NoSeparator(),
		Order:      InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	require.NoError(t, err)

	require.Len(t, q.Units(), 1)
	assert.Equal(t, 2, q.Units()[0].MinLen())
}

func TestBuildRejectsEmptyRequest(t *testing.T) {
	_, err := Request{Quantifier: Vocabularies(1)}.Build(dict.Builtin())
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Request{
		Entries:    []*vocabulary.Entry{entryOf(t, "あ:あ")},
		Quantifier: Vocabularies(0),
	}.Build(dict.Builtin())
	assert.ErrorIs(t, err, ErrQuantifier)
}
