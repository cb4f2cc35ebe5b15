package schedule

// Filter narrows a candidate set by a relational constraint. A nil Filter accepts all.
type Filter func(id int64) bool

// IDSet is a set of entity ids.
type IDSet map[int64]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set. A nil set is empty.
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Pool draws candidates uniformly at random among the ones still eligible.
type Pool struct {
	tracker *Tracker
	rng     Rand
}

// NewPool creates a pool over the tracker's counters.
func NewPool(tracker *Tracker, rng Rand) *Pool {
	return &Pool{tracker: tracker, rng: rng}
}

// Eligible returns, in universe order, the ids that are not excluded, pass the
// filter and are below the cap.
func (p *Pool) Eligible(c Category, universe []int64, excluded IDSet, filter Filter) []int64 {
	var out []int64
	for _, id := range universe {
		if excluded.Has(id) {
			continue
		}
		if filter != nil && !filter(id) {
			continue
		}
		if !p.tracker.Available(c, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Draw picks one eligible id and counts its appearance. ok is false when nothing
// is eligible; the tracker is then left untouched.
func (p *Pool) Draw(c Category, universe []int64, excluded IDSet, filter Filter) (id int64, ok bool) {
	eligible := p.Eligible(c, universe, excluded, filter)
	if len(eligible) == 0 {
		return 0, false
	}
	id = eligible[p.rng.Intn(len(eligible))]
	p.tracker.Increment(c, id)
	return id, true
}
