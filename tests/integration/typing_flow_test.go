//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"romatype/internal/dict"
	"romatype/internal/engine"
	"romatype/internal/keystroke"
	"romatype/internal/query"
	"romatype/internal/statistics"
	"romatype/internal/vocabulary"
)

// TestFullDrillFlow runs the complete pipeline: parse a vocabulary
// listing, assemble a separated query, type it through the engine, and
// check the final result.
func TestFullDrillFlow(t *testing.T) {
	listing := strings.Join([]string{
		"# sample drill words",
		"頑張る:がん,ば,る",
		"[今日]の天気:きょう,の,てん,き",
		"",
		"Go:G,o",
	}, "\n")

	entries, err := vocabulary.ParseLines(strings.NewReader(listing))
	if err != nil {
		t.Fatalf("parse listing: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("parsed %d entries, want 3", len(entries))
	}

	req := query.Request{
		Entries:    entries,
		Quantifier: query.Vocabularies(5),
		Separator:  query.WhiteSpaceSeparator(),
		Order:      query.InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Three words and two separators: がんばる きょうのてんき Go
	ideal := idealStrokes(q)

	e := startedEngine(t, req)
	typeAll(t, e, ideal, 0)
	requireFinishedClean(t, e, len(ideal))

	info, err := e.DisplayInfo(statistics.LapSpec{})
	if err != nil {
		t.Fatalf("display info: %v", err)
	}
	if info.Spell.Text != "がんばる きょうのてんき Go" {
		t.Fatalf("spell line = %q", info.Spell.Text)
	}
	if got := len(e.VocabularyInfos()); got != 5 {
		t.Fatalf("vocabulary infos = %d, want 5", got)
	}
}

// TestKeyStrokeBudgetDrill verifies that a stroke-budgeted query is
// typable in exactly the budgeted number of ideal strokes.
func TestKeyStrokeBudgetDrill(t *testing.T) {
	entries := parseEntries(t, entryLine("しょうがっこう"))

	const budget = 10
	req := query.Request{
		Entries:    entries,
		Quantifier: query.KeyStrokes(budget),
		Separator:  query.NoSeparator(),
		Order:      query.InOrder(),
	}
	q, err := req.Build(dict.Builtin())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ideal := idealStrokes(q)
	if len(ideal) != budget {
		t.Fatalf("ideal stroke count = %d, want %d", len(ideal), budget)
	}

	e := startedEngine(t, req)
	typeAll(t, e, ideal, 0)
	requireFinishedClean(t, e, budget)
}

// TestCursorNeverRegresses interleaves wrong strokes with the ideal
// sequence and checks that the key stroke cursor is monotone and every
// miss is counted.
func TestCursorNeverRegresses(t *testing.T) {
	reading := "ざんねん"
	q := queryFor(t, reading)
	ideal := idealStrokes(q)

	e := startedEngine(t, query.Request{
		Entries:    parseEntries(t, entryLine(reading)),
		Quantifier: query.Vocabularies(1),
		Separator:  query.NoSeparator(),
		Order:      query.InOrder(),
	})

	misses := 0
	lastCursor := 0
	elapsed := time.Duration(0)
	for i, r := range ideal {
		// A '1' never appears in a romanization of hiragana.
		elapsed += 10 * time.Millisecond
		out, err := e.StrokeKeyWithElapsed(keystroke.MustKey('1'), elapsed)
		if err != nil {
			t.Fatalf("wrong stroke %d: %v", i, err)
		}
		if out.Classification != keystroke.Miss {
			t.Fatalf("stroke '1' classified as hit at %d", i)
		}
		misses++

		elapsed += 10 * time.Millisecond
		if _, err := e.StrokeKeyWithElapsed(keystroke.MustKey(r), elapsed); err != nil {
			t.Fatalf("stroke %q: %v", r, err)
		}

		info, err := e.DisplayInfo(statistics.LapSpec{})
		if err != nil {
			t.Fatalf("display info: %v", err)
		}
		if info.KeyStroke.Cursor < lastCursor {
			t.Fatalf("cursor regressed from %d to %d", lastCursor, info.KeyStroke.Cursor)
		}
		lastCursor = info.KeyStroke.Cursor
	}

	if !e.IsFinished() {
		t.Fatal("query not finished")
	}
	res, err := e.Result(statistics.LapSpec{})
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.KeyStroke.Wrong != misses {
		t.Fatalf("wrong count = %d, want %d", res.KeyStroke.Wrong, misses)
	}
	if res.KeyStroke.CompletelyCorrect != 0 {
		t.Fatalf("every stroke was preceded by a miss, got %d completely correct",
			res.KeyStroke.CompletelyCorrect)
	}
}

// TestCustomDictionaryFileDrives loads a user dictionary from disk,
// merges it over the built-in table, and types a query with it.
func TestCustomDictionaryFileDrives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	custom := `[spellings]
"か" = ["qa"]
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	user, err := dict.Load(path)
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	d := dict.Builtin().Merge(user)

	entries := parseEntries(t, entryLine("かき"))
	e := engine.New(d)
	if err := e.Init(query.Request{
		Entries:    entries,
		Quantifier: query.Vocabularies(1),
		Separator:  query.NoSeparator(),
		Order:      query.InOrder(),
	}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	typeAll(t, e, "qaki", 0)
	if !e.IsFinished() {
		t.Fatal("query not finished with custom dictionary")
	}
}
