package statistics

import (
	"sort"
	"time"

	"romatype/internal/keystroke"
)

// WrongCount pairs a mistyped key with how often it was struck in place
// of the key under measurement.
type WrongCount struct {
	Key   keystroke.Key `json:"key"`
	Count int           `json:"count"`
}

// KeySkill aggregates how one key has been typed: occurrence count,
// cumulative time needed, the keys mistyped in its place, and how many
// occurrences were hit without a preceding miss.
type KeySkill struct {
	Key               keystroke.Key `json:"key"`
	Count             int           `json:"count"`
	CumulativeTime    time.Duration `json:"cumulative_time"`
	CompletelyCorrect int           `json:"completely_correct"`
	// WrongCounts is sorted by key.
	WrongCounts []WrongCount `json:"wrong_counts,omitempty"`
}

// Accuracy returns the ratio of completely correct occurrences. A key
// never typed has accuracy 0.
func (k KeySkill) Accuracy() float64 {
	if k.Count == 0 {
		return 0
	}
	return float64(k.CompletelyCorrect) / float64(k.Count)
}

// AverageTime returns the mean time needed to land the key.
func (k KeySkill) AverageTime() time.Duration {
	if k.Count == 0 {
		return 0
	}
	return k.CumulativeTime / time.Duration(k.Count)
}

// WrongRanking returns the mistyped keys ordered by descending count,
// ties broken by key order.
func (k KeySkill) WrongRanking() []WrongCount {
	ranking := make([]WrongCount, len(k.WrongCounts))
	copy(ranking, k.WrongCounts)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// merge combines two aggregates of the same key.
func (k KeySkill) merge(other KeySkill) KeySkill {
	counts := make(map[keystroke.Key]int, len(k.WrongCounts)+len(other.WrongCounts))
	for _, w := range k.WrongCounts {
		counts[w.Key] += w.Count
	}
	for _, w := range other.WrongCounts {
		counts[w.Key] += w.Count
	}
	return KeySkill{
		Key:               k.Key,
		Count:             k.Count + other.Count,
		CumulativeTime:    k.CumulativeTime + other.CumulativeTime,
		CompletelyCorrect: k.CompletelyCorrect + other.CompletelyCorrect,
		WrongCounts:       sortedWrongCounts(counts),
	}
}

// Skill is the per-key skill snapshot of a session, sorted by key.
type Skill struct {
	Keys []KeySkill `json:"keys,omitempty"`
}

// Merge combines two skill snapshots, adding up the aggregates of keys
// present in both.
func (s Skill) Merge(other Skill) Skill {
	byKey := make(map[keystroke.Key]KeySkill, len(s.Keys)+len(other.Keys))
	for _, k := range s.Keys {
		byKey[k.Key] = k
	}
	for _, k := range other.Keys {
		if existing, ok := byKey[k.Key]; ok {
			byKey[k.Key] = existing.merge(k)
		} else {
			byKey[k.Key] = k
		}
	}
	keys := make([]KeySkill, 0, len(byKey))
	for _, k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return Skill{Keys: keys}
}

// keySkillAccumulator is the mutable per-key state behind a KeySkill.
type keySkillAccumulator struct {
	count             int
	cumulativeTime    time.Duration
	completelyCorrect int
	wrongCounts       map[keystroke.Key]int
}

// SkillTracker aggregates per-key skill from a chronological stroke
// stream. A correct stroke closes one occurrence of its key: the time
// since the previous correct stroke is charged to it, along with every
// wrong key struck in between.
type SkillTracker struct {
	perKey       map[keystroke.Key]*keySkillAccumulator
	pendingWrong []keystroke.Key
	lastCorrect  time.Duration
}

// NewSkillTracker builds an empty tracker.
func NewSkillTracker() *SkillTracker {
	return &SkillTracker{perKey: make(map[keystroke.Key]*keySkillAccumulator)}
}

// OnStroke consumes one actual stroke. Strokes must arrive in the order
// they were typed.
func (t *SkillTracker) OnStroke(st keystroke.Stroke) {
	if !st.Correct() {
		t.pendingWrong = append(t.pendingWrong, st.Key())
		return
	}

	acc, ok := t.perKey[st.Key()]
	if !ok {
		acc = &keySkillAccumulator{wrongCounts: make(map[keystroke.Key]int)}
		t.perKey[st.Key()] = acc
	}
	acc.count++
	acc.cumulativeTime += st.Elapsed() - t.lastCorrect
	if len(t.pendingWrong) == 0 {
		acc.completelyCorrect++
	} else {
		for _, k := range t.pendingWrong {
			acc.wrongCounts[k]++
		}
	}

	t.pendingWrong = t.pendingWrong[:0]
	t.lastCorrect = st.Elapsed()
}

// Snapshot returns the per-key aggregates collected so far, sorted by
// key.
func (t *SkillTracker) Snapshot() Skill {
	keys := make([]KeySkill, 0, len(t.perKey))
	for key, acc := range t.perKey {
		keys = append(keys, KeySkill{
			Key:               key,
			Count:             acc.count,
			CumulativeTime:    acc.cumulativeTime,
			CompletelyCorrect: acc.completelyCorrect,
			WrongCounts:       sortedWrongCounts(acc.wrongCounts),
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return Skill{Keys: keys}
}

func sortedWrongCounts(counts map[keystroke.Key]int) []WrongCount {
	if len(counts) == 0 {
		return nil
	}
	out := make([]WrongCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, WrongCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
