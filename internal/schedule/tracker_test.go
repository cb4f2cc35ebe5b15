package schedule

import (
	"testing"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallReference() *Reference {
	return NewReference(
		[]domain.Cuisine{{ID: 1}, {ID: 2}, {ID: 3}},
		[]domain.Cook{
			{ID: 10, CuisineIDs: []int64{1}},
			{ID: 11, CuisineIDs: []int64{2}},
			{ID: 12, CuisineIDs: []int64{3}},
			{ID: 13},
		},
		[]domain.Recipe{{ID: 20, CuisineID: 1}, {ID: 21, CuisineID: 2}, {ID: 22, CuisineID: 3}},
	)
}

func TestTracker_StartsAtZero(t *testing.T) {
	tr := NewTracker(smallReference(), 3)

	for _, c := range []Category{CategoryCuisine, CategoryCook, CategoryRecipe, CategoryJudge} {
		for _, id := range []int64{1, 10, 20} {
			assert.Equal(t, 0, tr.Count(c, id))
		}
	}
	assert.Equal(t, 3, tr.Cap())
}

func TestTracker_IncrementRespectsCap(t *testing.T) {
	tr := NewTracker(smallReference(), 2)

	tr.Increment(CategoryCook, 10)
	assert.True(t, tr.Available(CategoryCook, 10))
	tr.Increment(CategoryCook, 10)
	assert.False(t, tr.Available(CategoryCook, 10))
	assert.Equal(t, 2, tr.Count(CategoryCook, 10))

	assert.Panics(t, func() { tr.Increment(CategoryCook, 10) })
	assert.Equal(t, 2, tr.Count(CategoryCook, 10))
}

func TestTracker_CategoriesAreIndependent(t *testing.T) {
	tr := NewTracker(smallReference(), 3)

	tr.Increment(CategoryCook, 10)

	assert.Equal(t, 1, tr.Count(CategoryCook, 10))
	assert.Equal(t, 0, tr.Count(CategoryJudge, 10))
}

func TestTracker_ResetUnused(t *testing.T) {
	tr := NewTracker(smallReference(), 3)
	tr.Increment(CategoryCuisine, 1)
	tr.Increment(CategoryCuisine, 2)
	tr.Increment(CategoryCuisine, 2)
	tr.Increment(CategoryRecipe, 20)

	tr.ResetUnused(CategoryCuisine, []int64{2})

	assert.Equal(t, 0, tr.Count(CategoryCuisine, 1))
	assert.Equal(t, 2, tr.Count(CategoryCuisine, 2))
	assert.Equal(t, 1, tr.Count(CategoryRecipe, 20), "other categories untouched")

	t.Run("idempotent", func(t *testing.T) {
		before := tr.Snapshot()
		tr.ResetUnused(CategoryCuisine, []int64{2})
		assert.Equal(t, before, tr.Snapshot())
	})
}

func TestTracker_SnapshotRestore(t *testing.T) {
	tr := NewTracker(smallReference(), 3)
	tr.Increment(CategoryCuisine, 3)

	snap := tr.Snapshot()

	tr.Increment(CategoryCuisine, 1)
	tr.Increment(CategoryCook, 11)
	tr.Increment(CategoryJudge, 12)
	tr.Increment(CategoryRecipe, 22)
	tr.ResetUnused(CategoryCuisine, nil)
	require.NotEqual(t, snap, tr.Snapshot())

	tr.Restore(snap)
	assert.Equal(t, snap, tr.Snapshot())
	assert.Equal(t, 1, tr.Count(CategoryCuisine, 3))
	assert.Equal(t, 0, tr.Count(CategoryCook, 11))

	t.Run("snapshot is not aliased", func(t *testing.T) {
		tr.Increment(CategoryCuisine, 3)
		assert.Equal(t, 1, snap.Count(CategoryCuisine, 3))

		tr.Restore(snap)
		assert.Equal(t, 1, tr.Count(CategoryCuisine, 3))
	})
}

func TestReference_SkipsCooksWithoutCuisines(t *testing.T) {
	ref := smallReference()

	assert.Equal(t, []int64{10, 11, 12}, ref.Cooks)
	assert.True(t, ref.Qualified(10, 1))
	assert.False(t, ref.Qualified(10, 2))
	assert.False(t, ref.Qualified(13, 1))

	cuisine, ok := ref.CuisineOf(21)
	assert.True(t, ok)
	assert.Equal(t, int64(2), cuisine)

	assert.Equal(t, []int64{10, 11}, ref.OriginalCast(2))
	assert.Equal(t, []int64{10, 11, 12}, ref.OriginalCast(10))
}

func TestReference_Validate(t *testing.T) {
	assert.NoError(t, smallReference().Validate())

	empty := NewReference(nil, []domain.Cook{{ID: 1}}, nil)
	assert.ErrorIs(t, empty.Validate(), ErrEmptyReference)
}
