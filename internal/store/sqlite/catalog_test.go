package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// testCatalog is a small population created by seedCatalog.
type testCatalog struct {
	cuisines []domain.Cuisine
	cooks    []domain.Cook
	recipes  []domain.Recipe
}

// seedCatalog creates n cuisines, two cooks qualified for each cuisine and one
// recipe per cuisine.
func seedCatalog(t *testing.T, s *Store, n int) testCatalog {
	t.Helper()
	ctx := context.Background()
	var cat testCatalog

	names := []string{"Greek", "Italian", "Japanese", "Mexican", "Indian", "French", "Thai", "Peruvian"}
	for i := range n {
		c := domain.Cuisine{Name: names[i%len(names)]}
		if i >= len(names) {
			c.Name += " " + string(rune('A'+i))
		}
		if err := s.CreateCuisine(ctx, &c); err != nil {
			t.Fatalf("CreateCuisine: %v", err)
		}
		cat.cuisines = append(cat.cuisines, c)
	}

	for i := range 2 * n {
		c := domain.Cook{
			FirstName:         "Cook",
			LastName:          string(rune('A' + i)),
			BirthDate:         time.Date(1980+i, time.March, 1, 0, 0, 0, 0, time.UTC),
			YearsOfExperience: i,
			Class:             domain.CookClassChef,
			CuisineIDs:        []int64{cat.cuisines[i%n].ID},
		}
		if err := s.CreateCook(ctx, &c); err != nil {
			t.Fatalf("CreateCook: %v", err)
		}
		cat.cooks = append(cat.cooks, c)
	}

	for i := range n {
		r := domain.Recipe{
			Name:       "Dish " + string(rune('A'+i)),
			CuisineID:  cat.cuisines[i].ID,
			Category:   "main course",
			Difficulty: 1 + i%5,
		}
		if err := s.CreateRecipe(ctx, &r); err != nil {
			t.Fatalf("CreateRecipe: %v", err)
		}
		cat.recipes = append(cat.recipes, r)
	}
	return cat
}

func TestCuisineCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := domain.Cuisine{Name: "Greek"}
	if err := s.CreateCuisine(ctx, &c); err != nil {
		t.Fatalf("CreateCuisine: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected ID to be set")
	}

	got, err := s.GetCuisine(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCuisine: %v", err)
	}
	if got.Name != "Greek" {
		t.Errorf("Name: got %q, want %q", got.Name, "Greek")
	}

	if err := s.RenameCuisine(ctx, c.ID, "Hellenic"); err != nil {
		t.Fatalf("RenameCuisine: %v", err)
	}
	got, _ = s.GetCuisine(ctx, c.ID)
	if got.Name != "Hellenic" {
		t.Errorf("Name after rename: got %q", got.Name)
	}

	list, err := s.ListCuisines(ctx)
	if err != nil {
		t.Fatalf("ListCuisines: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListCuisines: got %d, want 1", len(list))
	}

	if err := s.DeleteCuisine(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCuisine: %v", err)
	}
	if _, err := s.GetCuisine(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteCuisine(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCuisineNameUniqueAfterNormalization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCuisine(ctx, &domain.Cuisine{Name: "Crème Cuisine"}); err != nil {
		t.Fatalf("CreateCuisine: %v", err)
	}
	err := s.CreateCuisine(ctx, &domain.Cuisine{Name: "creme  CUISINE"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	other := domain.Cuisine{Name: "Thai"}
	if err := s.CreateCuisine(ctx, &other); err != nil {
		t.Fatalf("CreateCuisine: %v", err)
	}
	if err := s.RenameCuisine(ctx, other.ID, "CRÈME cuisine"); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists on rename, got %v", err)
	}
}

func TestDeleteCuisineInUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := seedCatalog(t, s, 2)

	err := s.DeleteCuisine(ctx, cat.cuisines[0].ID)
	if !errors.Is(err, store.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}

	// Without recipes the cuisine goes and qualifications go with it.
	if err := s.DeleteRecipe(ctx, cat.recipes[0].ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if err := s.DeleteCuisine(ctx, cat.cuisines[0].ID); err != nil {
		t.Fatalf("DeleteCuisine: %v", err)
	}
	cook, err := s.GetCook(ctx, cat.cooks[0].ID)
	if err != nil {
		t.Fatalf("GetCook: %v", err)
	}
	if len(cook.CuisineIDs) != 0 {
		t.Errorf("expected qualifications dropped, got %v", cook.CuisineIDs)
	}
}

func TestCookCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := seedCatalog(t, s, 3)

	c := domain.Cook{
		FirstName:         "Maria",
		LastName:          "Papadopoulou",
		BirthDate:         time.Date(1975, time.December, 24, 0, 0, 0, 0, time.UTC),
		Phone:             "+302101234567",
		YearsOfExperience: 22,
		Class:             domain.CookClassSousChef,
		CuisineIDs:        []int64{cat.cuisines[2].ID, cat.cuisines[0].ID},
	}
	if err := s.CreateCook(ctx, &c); err != nil {
		t.Fatalf("CreateCook: %v", err)
	}

	got, err := s.GetCook(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCook: %v", err)
	}
	if got.FullName() != "Maria Papadopoulou" {
		t.Errorf("FullName: got %q", got.FullName())
	}
	if !got.BirthDate.Equal(c.BirthDate) {
		t.Errorf("BirthDate: got %v, want %v", got.BirthDate, c.BirthDate)
	}
	if got.Phone != c.Phone || got.YearsOfExperience != 22 || got.Class != domain.CookClassSousChef {
		t.Errorf("unexpected cook: %+v", got)
	}
	want := []int64{cat.cuisines[0].ID, cat.cuisines[2].ID}
	if len(got.CuisineIDs) != 2 || got.CuisineIDs[0] != want[0] || got.CuisineIDs[1] != want[1] {
		t.Errorf("CuisineIDs: got %v, want %v", got.CuisineIDs, want)
	}

	cooks, err := s.ListCooks(ctx)
	if err != nil {
		t.Fatalf("ListCooks: %v", err)
	}
	if len(cooks) != 7 {
		t.Fatalf("ListCooks: got %d, want 7", len(cooks))
	}
	last := cooks[len(cooks)-1]
	if last.ID != c.ID || len(last.CuisineIDs) != 2 {
		t.Errorf("ListCooks last: got %+v", last)
	}
	for i := 1; i < len(cooks); i++ {
		if cooks[i-1].ID >= cooks[i].ID {
			t.Errorf("ListCooks not ordered by id at %d", i)
		}
	}

	if err := s.DeleteCook(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCook: %v", err)
	}
	if _, err := s.GetCook(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateCookUnknownCuisine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := domain.Cook{
		FirstName:  "Nobody",
		BirthDate:  time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Class:      domain.CookClassThird,
		CuisineIDs: []int64{999},
	}
	err := s.CreateCook(ctx, &c)
	if !errors.Is(err, store.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}

	// The cook row was rolled back with the qualification.
	cooks, err := s.ListCooks(ctx)
	if err != nil {
		t.Fatalf("ListCooks: %v", err)
	}
	if len(cooks) != 0 {
		t.Errorf("expected no cooks, got %d", len(cooks))
	}
}

func TestRecipeCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := seedCatalog(t, s, 2)

	r := domain.Recipe{
		Name:        "Moussaka",
		CuisineID:   cat.cuisines[0].ID,
		Category:    "main course",
		Difficulty:  4,
		Description: "Layered aubergine bake.",
	}
	if err := s.CreateRecipe(ctx, &r); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if !reflect.DeepEqual(*got, r) {
		t.Errorf("GetRecipe: got %+v, want %+v", *got, r)
	}

	if err := s.CreateRecipe(ctx, &domain.Recipe{Name: "moussaka", CuisineID: cat.cuisines[1].ID, Difficulty: 1}); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if err := s.CreateRecipe(ctx, &domain.Recipe{Name: "Ghost", CuisineID: 999, Difficulty: 1}); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}

	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 3 {
		t.Errorf("ListRecipes: got %d, want 3", len(recipes))
	}

	n, err := s.CountRecipeAppearances(ctx, r.ID)
	if err != nil {
		t.Fatalf("CountRecipeAppearances: %v", err)
	}
	if n != 0 {
		t.Errorf("appearances: got %d, want 0", n)
	}

	if err := s.DeleteRecipe(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if _, err := s.GetRecipe(ctx, r.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := seedCatalog(t, s, 3)

	c := cat.cooks[0]
	c.LastName = "Renamed"
	c.YearsOfExperience = 30
	c.Class = domain.CookClassChef
	c.CuisineIDs = []int64{cat.cuisines[2].ID, cat.cuisines[1].ID}
	if err := s.UpdateCook(ctx, &c); err != nil {
		t.Fatalf("UpdateCook: %v", err)
	}

	got, err := s.GetCook(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCook: %v", err)
	}
	if got.LastName != "Renamed" || got.YearsOfExperience != 30 {
		t.Errorf("unexpected cook: %+v", got)
	}
	want := []int64{cat.cuisines[1].ID, cat.cuisines[2].ID}
	if !reflect.DeepEqual(got.CuisineIDs, want) {
		t.Errorf("CuisineIDs: got %v, want %v", got.CuisineIDs, want)
	}

	// A failed update leaves the previous qualifications in place.
	bad := *got
	bad.CuisineIDs = []int64{cat.cuisines[0].ID, 999}
	if err := s.UpdateCook(ctx, &bad); !errors.Is(err, store.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	got, err = s.GetCook(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCook: %v", err)
	}
	if !reflect.DeepEqual(got.CuisineIDs, want) {
		t.Errorf("CuisineIDs after failed update: got %v, want %v", got.CuisineIDs, want)
	}

	missing := c
	missing.ID = 999
	if err := s.UpdateCook(ctx, &missing); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeParts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := seedCatalog(t, s, 2)

	feta := domain.Ingredient{Name: "Feta", Calories: 264}
	olive := domain.Ingredient{Name: "Olive oil", Calories: 884}
	tomato := domain.Ingredient{Name: "Tomato", Calories: 18}
	for _, in := range []*domain.Ingredient{&feta, &olive, &tomato} {
		if err := s.CreateIngredient(ctx, in); err != nil {
			t.Fatalf("CreateIngredient: %v", err)
		}
	}
	knife := domain.Tool{Name: "Knife"}
	bowl := domain.Tool{Name: "Bowl"}
	for _, tool := range []*domain.Tool{&knife, &bowl} {
		if err := s.CreateTool(ctx, tool); err != nil {
			t.Fatalf("CreateTool: %v", err)
		}
	}

	r := domain.Recipe{
		Name:       "Horiatiki",
		CuisineID:  cat.cuisines[0].ID,
		Difficulty: 1,
		Steps:      "Chop. Dress. Serve.",
		Nutrition:  &domain.Nutrition{Calories: 320, Carbs: 12, Fat: 26, Protein: 9.5},
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: tomato.ID, Amount: "300 g", Main: true},
			{IngredientID: feta.ID, Amount: "150 g"},
		},
		Tools: []domain.Tool{{ID: knife.ID}, {ID: bowl.ID}},
	}
	if err := s.CreateRecipe(ctx, &r); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Steps != r.Steps {
		t.Errorf("Steps: got %q", got.Steps)
	}
	if got.Nutrition == nil || *got.Nutrition != *r.Nutrition {
		t.Errorf("Nutrition: got %+v, want %+v", got.Nutrition, r.Nutrition)
	}
	wantIngredients := []domain.RecipeIngredient{
		{IngredientID: tomato.ID, Name: "Tomato", Amount: "300 g", Main: true},
		{IngredientID: feta.ID, Name: "Feta", Amount: "150 g"},
	}
	if !reflect.DeepEqual(got.Ingredients, wantIngredients) {
		t.Errorf("Ingredients: got %+v, want %+v", got.Ingredients, wantIngredients)
	}
	wantTools := []domain.Tool{{ID: bowl.ID, Name: "Bowl"}, {ID: knife.ID, Name: "Knife"}}
	if !reflect.DeepEqual(got.Tools, wantTools) {
		t.Errorf("Tools: got %+v, want %+v", got.Tools, wantTools)
	}

	// Ingredients and tools in use cannot be deleted.
	if err := s.DeleteIngredient(ctx, feta.ID); !errors.Is(err, store.ErrInUse) {
		t.Errorf("DeleteIngredient: expected ErrInUse, got %v", err)
	}
	if err := s.DeleteTool(ctx, knife.ID); !errors.Is(err, store.ErrInUse) {
		t.Errorf("DeleteTool: expected ErrInUse, got %v", err)
	}

	// Update replaces every part.
	got.Name = "Greek salad"
	got.CuisineID = cat.cuisines[1].ID
	got.Nutrition = nil
	got.Ingredients = []domain.RecipeIngredient{{IngredientID: olive.ID, Amount: "2 tbsp", Main: true}}
	got.Tools = nil
	if err := s.UpdateRecipe(ctx, got); err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	updated, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if updated.Name != "Greek salad" || updated.CuisineID != cat.cuisines[1].ID {
		t.Errorf("unexpected recipe: %+v", updated)
	}
	if updated.Nutrition != nil || updated.Tools != nil {
		t.Errorf("expected nutrition and tools cleared, got %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Name != "Olive oil" {
		t.Errorf("Ingredients: got %+v", updated.Ingredients)
	}
	if err := s.DeleteIngredient(ctx, feta.ID); err != nil {
		t.Errorf("DeleteIngredient after update: %v", err)
	}

	// Unknown parts roll the whole update back.
	bad := *updated
	bad.Name = "Ghost salad"
	bad.Tools = []domain.Tool{{ID: 999}}
	if err := s.UpdateRecipe(ctx, &bad); !errors.Is(err, store.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	again, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if again.Name != "Greek salad" || len(again.Ingredients) != 1 {
		t.Errorf("failed update changed the recipe: %+v", again)
	}

	dup := *updated
	dup.Name = cat.recipes[0].Name
	if err := s.UpdateRecipe(ctx, &dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if err := s.CreateRecipe(ctx, &domain.Recipe{
		Name: "Ghost", CuisineID: cat.cuisines[0].ID, Difficulty: 1,
		Ingredients: []domain.RecipeIngredient{{IngredientID: 999}},
	}); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}
