package schedule

import (
	"fmt"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// Stage is one of the four sequential selection steps of an episode.
type Stage int

// Selection stages, in the order they run.
const (
	StageCuisines Stage = iota
	StageCooks
	StageRecipes
	StageJudges
)

func (s Stage) String() string {
	switch s {
	case StageCuisines:
		return "cuisines"
	case StageCooks:
		return "cooks"
	case StageRecipes:
		return "recipes"
	case StageJudges:
		return "judges"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Result is the outcome of one episode attempt: either an episode or a dead end
// at some stage.
type Result struct {
	Episode *domain.Episode
	DeadEnd bool
	Stage   Stage // Stage that ran out of candidates, when DeadEnd
}

func success(ep *domain.Episode) Result { return Result{Episode: ep} }

func deadEnd(stage Stage) Result { return Result{DeadEnd: true, Stage: stage} }

// Assigner fills one episode. It mutates the tracker as it draws and never
// restores it; undoing a dead end is the Controller's job.
type Assigner struct {
	ref     *Reference
	tracker *Tracker
	pool    *Pool
	rng     Rand
	rules   Rules
}

// NewAssigner creates an assigner drawing from ref under rules.
func NewAssigner(ref *Reference, tracker *Tracker, rng Rand, rules Rules) *Assigner {
	return &Assigner{
		ref:     ref,
		tracker: tracker,
		pool:    NewPool(tracker, rng),
		rng:     rng,
		rules:   rules,
	}
}

// Run attempts the episode. In the legacy year only the original cast may judge.
func (a *Assigner) Run(year, ordinal int, legacy bool) Result {
	n := a.rules.Slots

	cuisines, ok := a.fill(CategoryCuisine, a.ref.Cuisines, NewIDSet(), n, nil)
	if !ok {
		return deadEnd(StageCuisines)
	}

	cooks, ok := a.fill(CategoryCook, a.ref.Cooks, NewIDSet(), n, func(slot int) Filter {
		return a.ref.CooksFor(cuisines[slot])
	})
	if !ok {
		return deadEnd(StageCooks)
	}

	recipes, ok := a.fill(CategoryRecipe, a.ref.Recipes, NewIDSet(), n, func(slot int) Filter {
		return a.ref.RecipesOf(cuisines[slot])
	})
	if !ok {
		return deadEnd(StageRecipes)
	}

	judgeUniverse := a.ref.Cooks
	if legacy {
		judgeUniverse = a.ref.OriginalCast(a.rules.OriginalCast)
	}
	judges, ok := a.fill(CategoryJudge, judgeUniverse, NewIDSet(cooks...), a.rules.Judges, nil)
	if !ok {
		return deadEnd(StageJudges)
	}

	ep := &domain.Episode{
		Year:        year,
		Ordinal:     ordinal,
		Assignments: make([]domain.Assignment, n),
		Judges:      make([]domain.JudgeSeat, len(judges)),
	}
	for i := range n {
		ep.Assignments[i] = domain.Assignment{
			CuisineID: cuisines[i],
			CookID:    cooks[i],
			RecipeID:  recipes[i],
			Grades:    [3]int{a.grade(), a.grade(), a.grade()},
		}
	}
	for i, id := range judges {
		ep.Judges[i] = domain.JudgeSeat{CookID: id, Position: i + 1}
	}
	return success(ep)
}

// fill draws n distinct ids of a category. Picks are added to excluded as they
// are made. When the stage completes, counters of the category are reset for
// everything not picked.
func (a *Assigner) fill(c Category, universe []int64, excluded IDSet, n int, filterFor func(slot int) Filter) ([]int64, bool) {
	picked := make([]int64, 0, n)
	for slot := range n {
		var filter Filter
		if filterFor != nil {
			filter = filterFor(slot)
		}
		id, ok := a.pool.Draw(c, universe, excluded, filter)
		if !ok {
			return nil, false
		}
		excluded.Add(id)
		picked = append(picked, id)
	}
	a.tracker.ResetUnused(c, picked)
	return picked, true
}

func (a *Assigner) grade() int {
	return a.rules.MinGrade + a.rng.Intn(a.rules.MaxGrade-a.rules.MinGrade+1)
}
