package schedule

import (
	"fmt"
	"math/rand"
	"time"
)

// Category identifies one of the four tracked entity kinds.
type Category int

// Tracked categories. Judges are cooks, but their appearances are counted apart.
const (
	CategoryCuisine Category = iota
	CategoryCook
	CategoryRecipe
	CategoryJudge
	numCategories
)

func (c Category) String() string {
	switch c {
	case CategoryCuisine:
		return "cuisine"
	case CategoryCook:
		return "cook"
	case CategoryRecipe:
		return "recipe"
	case CategoryJudge:
		return "judge"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Rules holds the shape of an episode and the appearance cap.
type Rules struct {
	Slots           int // Assignments per episode
	Judges          int // Judge panel size
	Cap             int // Max consecutive appearances per entity
	EpisodesPerYear int
	OriginalCast    int // Cooks eligible to judge in the legacy year, by reference order
	MinGrade        int
	MaxGrade        int
}

// DefaultRules returns the rules of the show.
func DefaultRules() Rules {
	return Rules{
		Slots:           10,
		Judges:          3,
		Cap:             3,
		EpisodesPerYear: 10,
		OriginalCast:    10,
		MinGrade:        1,
		MaxGrade:        5,
	}
}

// Validate checks that the rules describe a possible episode.
func (r Rules) Validate() error {
	switch {
	case r.Slots < 1:
		return fmt.Errorf("slots must be positive, got %d", r.Slots)
	case r.Judges < 1 || r.Judges > 3:
		return fmt.Errorf("judges must be between 1 and 3, got %d", r.Judges)
	case r.Cap < 1:
		return fmt.Errorf("cap must be positive, got %d", r.Cap)
	case r.EpisodesPerYear < 1:
		return fmt.Errorf("episodes per year must be positive, got %d", r.EpisodesPerYear)
	case r.OriginalCast < r.Judges:
		return fmt.Errorf("original cast (%d) smaller than judge panel (%d)", r.OriginalCast, r.Judges)
	case r.MinGrade > r.MaxGrade:
		return fmt.Errorf("grade range [%d,%d] is empty", r.MinGrade, r.MaxGrade)
	}
	return nil
}

// Rand is the random source behind every draw. *math/rand.Rand satisfies it;
// tests substitute deterministic sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed is replaced by the current time
// and the chosen seed is returned so the run can be reproduced.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
