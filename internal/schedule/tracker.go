package schedule

import "fmt"

// Tracker counts consecutive appearances of every cuisine, cook, recipe and judge.
// It is not safe for concurrent use; a generation run owns exactly one.
type Tracker struct {
	capacity int
	counts   [numCategories]map[int64]int
}

// Snapshot is an immutable copy of a tracker's counters.
type Snapshot struct {
	counts [numCategories]map[int64]int
}

// NewTracker creates a tracker with a zero counter for every entity of ref.
func NewTracker(ref *Reference, capacity int) *Tracker {
	t := &Tracker{capacity: capacity}
	seed := [numCategories][]int64{
		CategoryCuisine: ref.Cuisines,
		CategoryCook:    ref.Cooks,
		CategoryRecipe:  ref.Recipes,
		CategoryJudge:   ref.Cooks,
	}
	for c, ids := range seed {
		m := make(map[int64]int, len(ids))
		for _, id := range ids {
			m[id] = 0
		}
		t.counts[c] = m
	}
	return t
}

// Cap returns the appearance cap the tracker enforces.
func (t *Tracker) Cap() int {
	return t.capacity
}

// Count returns the current counter of an entity.
func (t *Tracker) Count(c Category, id int64) int {
	return t.counts[c][id]
}

// Available reports whether the entity is still below the cap.
func (t *Tracker) Available(c Category, id int64) bool {
	return t.counts[c][id] < t.capacity
}

// Increment adds one appearance. Callers check Available first; going over the
// cap is a programming error.
func (t *Tracker) Increment(c Category, id int64) {
	if t.counts[c][id] >= t.capacity {
		panic(fmt.Sprintf("schedule: %s %d already at cap %d", c, id, t.capacity))
	}
	t.counts[c][id]++
}

// ResetUnused zeroes every counter of the category whose entity is not in used.
func (t *Tracker) ResetUnused(c Category, used []int64) {
	keep := make(map[int64]struct{}, len(used))
	for _, id := range used {
		keep[id] = struct{}{}
	}
	for id := range t.counts[c] {
		if _, ok := keep[id]; !ok {
			t.counts[c][id] = 0
		}
	}
}

// Snapshot captures all four categories together.
func (t *Tracker) Snapshot() Snapshot {
	var s Snapshot
	for c := range t.counts {
		s.counts[c] = copyCounts(t.counts[c])
	}
	return s
}

// Restore replaces the tracker state with a snapshot. The snapshot stays valid
// and can be restored again.
func (t *Tracker) Restore(s Snapshot) {
	for c := range s.counts {
		t.counts[c] = copyCounts(s.counts[c])
	}
}

// Count returns an entity's counter at the time of the snapshot.
func (s Snapshot) Count(c Category, id int64) int {
	return s.counts[c][id]
}

func copyCounts(m map[int64]int) map[int64]int {
	out := make(map[int64]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
