package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store/sqlite"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestStore opens a fresh SQLite database in a temporary directory.
func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// setupCatalog creates a catalogue service over a fresh store and an
// in-memory search index.
func setupCatalog(t *testing.T) (*CatalogService, *sqlite.Store, *search.Index) {
	t.Helper()

	s := setupTestStore(t)
	idx, err := search.Open(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	svc := NewCatalogService(s, idx, discardLogger())
	svc.now = func() time.Time { return testNow }
	return svc, s, idx
}

// smallRules keeps generation tests fast: two slots, one judge, two
// episodes a year.
func smallRules() schedule.Rules {
	return schedule.Rules{
		Slots:           2,
		Judges:          1,
		Cap:             3,
		EpisodesPerYear: 2,
		OriginalCast:    2,
		MinGrade:        1,
		MaxGrade:        5,
	}
}

// seedCatalog fills the store through the service: n cuisines, 2n cooks each
// qualified for two cuisines and 2n recipes.
func seedCatalog(t *testing.T, svc *CatalogService, n int) {
	t.Helper()
	ctx := context.Background()

	ids := make([]int64, n)
	for i := range n {
		c, err := svc.CreateCuisine(ctx, CuisineRequest{Name: fmt.Sprintf("Cuisine %c", 'A'+i)})
		require.NoError(t, err)
		ids[i] = c.ID
	}

	for i := range 2 * n {
		_, err := svc.CreateCook(ctx, CreateCookRequest{
			FirstName:  fmt.Sprintf("Cook%c", 'A'+i),
			LastName:   "Test",
			BirthDate:  "1990-01-15",
			Class:      string(domain.CookClassFirst),
			CuisineIDs: []int64{ids[i%n], ids[(i+1)%n]},
		})
		require.NoError(t, err)
	}

	for i := range 2 * n {
		_, err := svc.CreateRecipe(ctx, CreateRecipeRequest{
			Name:       fmt.Sprintf("Dish %c", 'A'+i),
			CuisineID:  ids[i%n],
			Difficulty: i%5 + 1,
		})
		require.NoError(t, err)
	}
}

func setupGeneration(t *testing.T, s *sqlite.Store) *GenerationService {
	t.Helper()

	svc := NewGenerationService(s, config.GenerationConfig{Seed: 7, YearLimit: 2024}, nil, discardLogger())
	svc.WithRules(smallRules())
	return svc
}

func requireCode(t *testing.T, err error, code domainerrors.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, domainerrors.CodeOf(err), "error: %v", err)
}
