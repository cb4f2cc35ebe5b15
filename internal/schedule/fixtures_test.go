package schedule

import (
	"context"
	"sync"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// firstRand always picks the first candidate and the lowest grade.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

// lastRand always picks the last candidate and the highest grade.
type lastRand struct{}

func (lastRand) Intn(n int) int { return n - 1 }

// testReference builds a population large enough that dead ends are rare:
// every cuisine has six qualified cooks and three recipes.
func testReference(numCuisines int) *Reference {
	cuisines := make([]domain.Cuisine, numCuisines)
	for i := range cuisines {
		cuisines[i] = domain.Cuisine{ID: int64(i + 1)}
	}

	cooks := make([]domain.Cook, 2*numCuisines)
	for i := range cooks {
		cooks[i] = domain.Cook{
			ID: int64(100 + i),
			CuisineIDs: []int64{
				int64(i%numCuisines + 1),
				int64((i+1)%numCuisines + 1),
				int64((i+7)%numCuisines + 1),
			},
		}
	}

	var recipes []domain.Recipe
	for i := range 3 * numCuisines {
		recipes = append(recipes, domain.Recipe{
			ID:        int64(1000 + i),
			CuisineID: int64(i%numCuisines + 1),
		})
	}
	return NewReference(cuisines, cooks, recipes)
}

// recordingPersister keeps every persisted episode and can be told to fail.
type recordingPersister struct {
	mu       sync.Mutex
	episodes []*domain.Episode
	err      error
}

func (p *recordingPersister) PersistEpisode(_ context.Context, ep *domain.Episode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.episodes = append(p.episodes, ep)
	return nil
}

// countingObserver tallies controller events.
type countingObserver struct {
	attempts  int
	deadEnds  map[Stage]int
	restores  int
	committed int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{deadEnds: make(map[Stage]int)}
}

func (o *countingObserver) AttemptStarted(int, int, int) { o.attempts++ }

func (o *countingObserver) DeadEnd(_, _ int, stage Stage) { o.deadEnds[stage]++ }

func (o *countingObserver) Restored(int, int) { o.restores++ }

func (o *countingObserver) Committed(*domain.Episode, int) { o.committed++ }

type fixedHistory struct {
	maxID int64
	err   error
}

func (h fixedHistory) MaxEpisodeID(context.Context) (int64, error) {
	return h.maxID, h.err
}
