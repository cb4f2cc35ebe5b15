package schedule

import (
	"errors"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// ErrEmptyReference is returned when the reference data cannot fill a single stage.
var ErrEmptyReference = errors.New("reference data has no cuisines, qualified cooks or recipes")

// Reference is the read-only population a run draws from, in reference order.
type Reference struct {
	Cuisines []int64
	Cooks    []int64 // Cooks qualified for at least one cuisine
	Recipes  []int64

	cookCuisines  map[int64]map[int64]struct{}
	recipeCuisine map[int64]int64
}

// NewReference indexes reference data. Input order is kept as reference order;
// cooks without any qualified cuisine take no part in generation.
func NewReference(cuisines []domain.Cuisine, cooks []domain.Cook, recipes []domain.Recipe) *Reference {
	r := &Reference{
		Cuisines:      make([]int64, 0, len(cuisines)),
		Cooks:         make([]int64, 0, len(cooks)),
		Recipes:       make([]int64, 0, len(recipes)),
		cookCuisines:  make(map[int64]map[int64]struct{}, len(cooks)),
		recipeCuisine: make(map[int64]int64, len(recipes)),
	}
	for _, c := range cuisines {
		r.Cuisines = append(r.Cuisines, c.ID)
	}
	for _, c := range cooks {
		if len(c.CuisineIDs) == 0 {
			continue
		}
		set := make(map[int64]struct{}, len(c.CuisineIDs))
		for _, id := range c.CuisineIDs {
			set[id] = struct{}{}
		}
		r.cookCuisines[c.ID] = set
		r.Cooks = append(r.Cooks, c.ID)
	}
	for _, rc := range recipes {
		r.recipeCuisine[rc.ID] = rc.CuisineID
		r.Recipes = append(r.Recipes, rc.ID)
	}
	return r
}

// Validate reports whether every stage has at least one candidate.
func (r *Reference) Validate() error {
	if len(r.Cuisines) == 0 || len(r.Cooks) == 0 || len(r.Recipes) == 0 {
		return ErrEmptyReference
	}
	return nil
}

// CooksFor returns a filter accepting cooks qualified for the cuisine.
func (r *Reference) CooksFor(cuisineID int64) Filter {
	return func(cookID int64) bool {
		_, ok := r.cookCuisines[cookID][cuisineID]
		return ok
	}
}

// RecipesOf returns a filter accepting recipes of the cuisine.
func (r *Reference) RecipesOf(cuisineID int64) Filter {
	return func(recipeID int64) bool {
		c, ok := r.recipeCuisine[recipeID]
		return ok && c == cuisineID
	}
}

// CuisineOf returns the cuisine of a recipe.
func (r *Reference) CuisineOf(recipeID int64) (int64, bool) {
	c, ok := r.recipeCuisine[recipeID]
	return c, ok
}

// Qualified reports whether the cook may cook the cuisine.
func (r *Reference) Qualified(cookID, cuisineID int64) bool {
	_, ok := r.cookCuisines[cookID][cuisineID]
	return ok
}

// OriginalCast returns the first n cooks in reference order.
func (r *Reference) OriginalCast(n int) []int64 {
	if n > len(r.Cooks) {
		n = len(r.Cooks)
	}
	return r.Cooks[:n:n]
}
