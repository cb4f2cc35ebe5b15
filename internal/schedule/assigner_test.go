package schedule

import (
	"testing"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertEpisodeShape checks every per-episode rule against ref.
func assertEpisodeShape(t *testing.T, ref *Reference, rules Rules, ep *domain.Episode) {
	t.Helper()

	require.Len(t, ep.Assignments, rules.Slots)
	require.Len(t, ep.Judges, rules.Judges)

	cuisines, cooks, recipes := NewIDSet(), NewIDSet(), NewIDSet()
	for _, a := range ep.Assignments {
		assert.False(t, cuisines.Has(a.CuisineID), "cuisine %d repeated", a.CuisineID)
		assert.False(t, cooks.Has(a.CookID), "cook %d repeated", a.CookID)
		assert.False(t, recipes.Has(a.RecipeID), "recipe %d repeated", a.RecipeID)
		cuisines.Add(a.CuisineID)
		cooks.Add(a.CookID)
		recipes.Add(a.RecipeID)

		assert.True(t, ref.Qualified(a.CookID, a.CuisineID), "cook %d not qualified for %d", a.CookID, a.CuisineID)
		c, ok := ref.CuisineOf(a.RecipeID)
		assert.True(t, ok)
		assert.Equal(t, a.CuisineID, c, "recipe %d cuisine", a.RecipeID)
		for _, g := range a.Grades {
			assert.GreaterOrEqual(t, g, rules.MinGrade)
			assert.LessOrEqual(t, g, rules.MaxGrade)
		}
	}

	judges := NewIDSet()
	for i, j := range ep.Judges {
		assert.Equal(t, i+1, j.Position)
		assert.False(t, cooks.Has(j.CookID), "judge %d also cooks", j.CookID)
		assert.False(t, judges.Has(j.CookID), "judge %d seated twice", j.CookID)
		judges.Add(j.CookID)
	}
}

func TestAssigner_Success(t *testing.T) {
	ref := testReference(20)
	rules := DefaultRules()
	tr := NewTracker(ref, rules.Cap)

	res := NewAssigner(ref, tr, firstRand{}, rules).Run(2001, 4, false)

	require.False(t, res.DeadEnd)
	ep := res.Episode
	assert.Equal(t, 2001, ep.Year)
	assert.Equal(t, 4, ep.Ordinal)
	assertEpisodeShape(t, ref, rules, ep)

	// First-candidate picks are fully determined.
	for i, a := range ep.Assignments {
		assert.Equal(t, int64(i+1), a.CuisineID)
		assert.Equal(t, int64(100+i), a.CookID)
		assert.Equal(t, int64(1000+i), a.RecipeID)
		assert.Equal(t, [3]int{1, 1, 1}, a.Grades)
	}
	assert.Equal(t, []domain.JudgeSeat{
		{CookID: 110, Position: 1},
		{CookID: 111, Position: 2},
		{CookID: 112, Position: 3},
	}, ep.Judges)

	for _, a := range ep.Assignments {
		assert.Equal(t, 1, tr.Count(CategoryCuisine, a.CuisineID))
		assert.Equal(t, 1, tr.Count(CategoryCook, a.CookID))
		assert.Equal(t, 1, tr.Count(CategoryRecipe, a.RecipeID))
	}
	assert.Equal(t, 1, tr.Count(CategoryJudge, 110))
	assert.Equal(t, 0, tr.Count(CategoryJudge, 100))
}

func TestAssigner_HighestGrades(t *testing.T) {
	ref := testReference(20)
	rules := DefaultRules()

	res := NewAssigner(ref, NewTracker(ref, rules.Cap), lastRand{}, rules).Run(2001, 1, false)

	require.False(t, res.DeadEnd)
	assertEpisodeShape(t, ref, rules, res.Episode)
	for _, a := range res.Episode.Assignments {
		assert.Equal(t, [3]int{5, 5, 5}, a.Grades)
	}
}

func TestAssigner_ResetsUnusedAfterStage(t *testing.T) {
	ref := testReference(20)
	rules := DefaultRules()
	tr := NewTracker(ref, rules.Cap)
	tr.Increment(CategoryCuisine, 20)
	tr.Increment(CategoryRecipe, 1059)

	res := NewAssigner(ref, tr, firstRand{}, rules).Run(2001, 1, false)

	require.False(t, res.DeadEnd)
	assert.Equal(t, 0, tr.Count(CategoryCuisine, 20))
	assert.Equal(t, 0, tr.Count(CategoryRecipe, 1059))
}

func TestAssigner_LegacyYearDeadEnd(t *testing.T) {
	// First-candidate picks seat the ten original cast members as cooks,
	// leaving nobody to judge a legacy episode.
	ref := testReference(20)
	rules := DefaultRules()
	tr := NewTracker(ref, rules.Cap)

	res := NewAssigner(ref, tr, firstRand{}, rules).Run(2001, 1, true)

	assert.True(t, res.DeadEnd)
	assert.Equal(t, StageJudges, res.Stage)
	assert.Nil(t, res.Episode)
	assert.Equal(t, 1, tr.Count(CategoryCuisine, 1), "assigner leaves rollback to the controller")
}

func TestAssigner_LegacyJudgesFromOriginalCast(t *testing.T) {
	ref := testReference(20)
	rules := DefaultRules()
	tr := NewTracker(ref, rules.Cap)
	cast := NewIDSet(ref.OriginalCast(rules.OriginalCast)...)

	// Cooks picked last-first leave the original cast free.
	res := NewAssigner(ref, tr, lastRand{}, rules).Run(2001, 1, true)

	require.False(t, res.DeadEnd)
	assertEpisodeShape(t, ref, rules, res.Episode)
	for _, j := range res.Episode.Judges {
		assert.True(t, cast.Has(j.CookID), "judge %d outside original cast", j.CookID)
	}
}

func TestAssigner_DeadEndStages(t *testing.T) {
	rules := Rules{Slots: 2, Judges: 1, Cap: 3, EpisodesPerYear: 1, OriginalCast: 1, MinGrade: 1, MaxGrade: 5}

	tests := []struct {
		name  string
		ref   *Reference
		stage Stage
	}{
		{
			name: "too few cuisines",
			ref: NewReference(
				[]domain.Cuisine{{ID: 1}},
				[]domain.Cook{{ID: 10, CuisineIDs: []int64{1}}},
				[]domain.Recipe{{ID: 20, CuisineID: 1}},
			),
			stage: StageCuisines,
		},
		{
			name: "no qualified cook",
			ref: NewReference(
				[]domain.Cuisine{{ID: 1}, {ID: 2}},
				[]domain.Cook{{ID: 10, CuisineIDs: []int64{1}}, {ID: 11, CuisineIDs: []int64{1}}},
				[]domain.Recipe{{ID: 20, CuisineID: 1}, {ID: 21, CuisineID: 2}},
			),
			stage: StageCooks,
		},
		{
			name: "no recipe of cuisine",
			ref: NewReference(
				[]domain.Cuisine{{ID: 1}, {ID: 2}},
				[]domain.Cook{{ID: 10, CuisineIDs: []int64{1, 2}}, {ID: 11, CuisineIDs: []int64{1, 2}}},
				[]domain.Recipe{{ID: 20, CuisineID: 1}, {ID: 21, CuisineID: 1}},
			),
			stage: StageRecipes,
		},
		{
			name: "every cook is cooking",
			ref: NewReference(
				[]domain.Cuisine{{ID: 1}, {ID: 2}},
				[]domain.Cook{{ID: 10, CuisineIDs: []int64{1, 2}}, {ID: 11, CuisineIDs: []int64{1, 2}}},
				[]domain.Recipe{{ID: 20, CuisineID: 1}, {ID: 21, CuisineID: 2}},
			),
			stage: StageJudges,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewAssigner(tt.ref, NewTracker(tt.ref, rules.Cap), firstRand{}, rules).Run(2001, 1, false)
			assert.True(t, res.DeadEnd)
			assert.Equal(t, tt.stage, res.Stage)
		})
	}
}
