//go:build integration

// Package integration provides end-to-end tests for the typing engine:
// query assembly over the built-in dictionary, full stroke sessions, and
// properties that must hold across the whole pipeline.
//
// Run with: go test -tags=integration ./tests/integration/...
package integration

import (
	"strings"
	"testing"
	"time"

	"romatype/internal/chunk"
	"romatype/internal/dict"
	"romatype/internal/engine"
	"romatype/internal/keystroke"
	"romatype/internal/query"
	"romatype/internal/statistics"
	"romatype/internal/vocabulary"
)

// entryLine synthesizes a vocabulary line whose view is the reading
// itself, one reading character per view character.
func entryLine(reading string) string {
	runes := []rune(reading)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return reading + ":" + strings.Join(parts, ",")
}

func parseEntries(t *testing.T, lines ...string) []*vocabulary.Entry {
	t.Helper()
	var entries []*vocabulary.Entry
	for _, line := range lines {
		entry, err := vocabulary.ParseLine(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func startedEngine(t *testing.T, req query.Request) *engine.Engine {
	t.Helper()
	e := engine.New(dict.Builtin())
	if err := e.Init(req); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return e
}

// idealStrokes concatenates the compile-time ideal candidates of a
// query's units.
func idealStrokes(q *query.Query) string {
	var b strings.Builder
	for _, u := range q.Units() {
		b.WriteString(string(u.Ideal().Whole()))
	}
	return b.String()
}

// typeAll strokes every character of s in order, starting at the given
// session time, and fails the test on a miss.
func typeAll(t *testing.T, e *engine.Engine, s string, start time.Duration) time.Duration {
	t.Helper()
	elapsed := start
	for i, r := range s {
		elapsed = start + time.Duration(i+1)*10*time.Millisecond
		out, err := e.StrokeKeyWithElapsed(keystroke.MustKey(r), elapsed)
		if err != nil {
			t.Fatalf("stroke %q at %d: %v", r, i, err)
		}
		if out.Classification != keystroke.Hit {
			t.Fatalf("stroke %q at %d classified as miss", r, i)
		}
	}
	return elapsed
}

// minimalStrokes finds, by exhaustive search, the fewest key strokes
// that can type the unit list: any candidate may be picked per unit as
// long as its head satisfies the constraint inherited from the previous
// pick.
func minimalStrokes(units []*chunk.Unprocessed) int {
	var search func(i int, constraint *keystroke.Key) (int, bool)
	search = func(i int, constraint *keystroke.Key) (int, bool) {
		if i == len(units) {
			return 0, true
		}
		best := -1
		for _, c := range units[i].Candidates() {
			if constraint != nil && !c.HeadSatisfies(*constraint) {
				continue
			}
			next := constraint
			if k, ok := c.Constraint(); ok {
				next = &k
			} else {
				next = nil
			}
			rest, ok := search(i+1, next)
			if !ok {
				continue
			}
			if total := c.Len() + rest; best < 0 || total < best {
				best = total
			}
		}
		return best, best >= 0
	}
	total, ok := search(0, nil)
	if !ok {
		panic("integration: no admissible candidate assignment")
	}
	return total
}

func queryFor(t *testing.T, reading string) *query.Query {
	t.Helper()
	entries := parseEntries(t, entryLine(reading))
	q, err := query.Request{
		Entries:    entries,
		Quantifier: query.Vocabularies(1),
		Separator:  query.NoSeparator(),
		Order:      query.InOrder(),
	}.Build(dict.Builtin())
	if err != nil {
		t.Fatalf("build query for %q: %v", reading, err)
	}
	return q
}

func requireFinishedClean(t *testing.T, e *engine.Engine, wantStrokes int) {
	t.Helper()
	if !e.IsFinished() {
		t.Fatal("query not finished")
	}
	res, err := e.Result(statistics.LapSpec{})
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.KeyStroke.Wrong != 0 {
		t.Fatalf("expected a clean session, got %d wrong strokes", res.KeyStroke.Wrong)
	}
	if res.KeyStroke.Finished != wantStrokes {
		t.Fatalf("finished strokes = %d, want %d", res.KeyStroke.Finished, wantStrokes)
	}
}
