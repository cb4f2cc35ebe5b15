package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
)

func TestCatalogService_CreateCuisine(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	c, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "  Greek   Island  "})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Greek Island", c.Name)

	got, err := svc.GetCuisine(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCatalogService_CreateCuisine_Duplicate(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Crème"})
	require.NoError(t, err)

	_, err = svc.CreateCuisine(ctx, CuisineRequest{Name: "CREME"})
	requireCode(t, err, domainerrors.CodeAlreadyExists)
}

func TestCatalogService_CreateCuisine_Blank(t *testing.T) {
	svc, _, _ := setupCatalog(t)

	_, err := svc.CreateCuisine(context.Background(), CuisineRequest{Name: "   "})
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestCatalogService_ListCuisines_Empty(t *testing.T) {
	svc, _, _ := setupCatalog(t)

	cuisines, err := svc.ListCuisines(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cuisines)
	assert.Empty(t, cuisines)
}

func TestCatalogService_RenameCuisine(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	c, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)

	renamed, err := svc.RenameCuisine(ctx, c.ID, CuisineRequest{Name: "Hellenic"})
	require.NoError(t, err)
	assert.Equal(t, "Hellenic", renamed.Name)

	_, err = svc.RenameCuisine(ctx, 999, CuisineRequest{Name: "Nowhere"})
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestCatalogService_GetCuisine_NotFound(t *testing.T) {
	svc, _, _ := setupCatalog(t)

	_, err := svc.GetCuisine(context.Background(), 42)
	requireCode(t, err, domainerrors.CodeNotFound)
	assert.Contains(t, err.Error(), "cuisine not found")
}

func TestCatalogService_DeleteCuisine_InUse(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	c, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, CreateRecipeRequest{Name: "Moussaka", CuisineID: c.ID, Difficulty: 3})
	require.NoError(t, err)

	err = svc.DeleteCuisine(ctx, c.ID)
	requireCode(t, err, domainerrors.CodeConflict)
}

func TestCatalogService_DeleteCuisine_DropsQualifications(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	italian, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Italian"})
	require.NoError(t, err)

	cook, err := svc.CreateCook(ctx, CreateCookRequest{
		FirstName: "Eleni", BirthDate: "1980-03-01", Class: "chef",
		CuisineIDs: []int64{greek.ID, italian.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCuisine(ctx, greek.ID))

	detail, err := svc.GetCook(ctx, cook.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Cuisine{{ID: italian.ID, Name: "Italian"}}, detail.Cuisines)
}

func TestCatalogService_CreateCook(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)

	cook, err := svc.CreateCook(ctx, CreateCookRequest{
		FirstName:         " Eleni ",
		LastName:          "Papadaki",
		BirthDate:         "1980-07-20",
		Phone:             "+30 (210) 555-0101",
		YearsOfExperience: 15,
		Class:             "sous chef",
		CuisineIDs:        []int64{greek.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Eleni", cook.FirstName)
	assert.Equal(t, "+302105550101", cook.Phone)

	detail, err := svc.GetCook(ctx, cook.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eleni Papadaki", detail.Name)
	assert.Equal(t, 43, detail.Age) // Birthday not yet reached on 2024-06-01
	assert.Equal(t, domain.CookClassSousChef, detail.Class)
	assert.Equal(t, []domain.Cuisine{{ID: greek.ID, Name: "Greek"}}, detail.Cuisines)
	assert.Zero(t, detail.CookAppearances)
	assert.Zero(t, detail.JudgeAppearances)
	assert.Zero(t, detail.Wins)

	cooks, err := svc.ListCooks(ctx)
	require.NoError(t, err)
	require.Len(t, cooks, 1)
	assert.Equal(t, CookSummary{ID: cook.ID, Name: "Eleni Papadaki", Age: 43, Class: domain.CookClassSousChef}, cooks[0])
}

func TestCatalogService_CreateCook_Invalid(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)

	valid := func() CreateCookRequest {
		return CreateCookRequest{
			FirstName: "Eleni", BirthDate: "1980-07-20", Class: "chef",
			CuisineIDs: []int64{greek.ID},
		}
	}

	tests := []struct {
		name   string
		mutate func(*CreateCookRequest)
		code   domainerrors.Code
	}{
		{"unknown class", func(r *CreateCookRequest) { r.Class = "line cook" }, domainerrors.CodeValidation},
		{"no cuisines", func(r *CreateCookRequest) { r.CuisineIDs = nil }, domainerrors.CodeValidation},
		{"bad birth date", func(r *CreateCookRequest) { r.BirthDate = "20/07/1980" }, domainerrors.CodeValidation},
		{"future birth date", func(r *CreateCookRequest) { r.BirthDate = "2030-01-01" }, domainerrors.CodeValidation},
		{"unknown cuisine", func(r *CreateCookRequest) { r.CuisineIDs = []int64{greek.ID, 999} }, domainerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			_, err := svc.CreateCook(ctx, req)
			requireCode(t, err, tt.code)
		})
	}

	// Nothing was written by the failed requests.
	cooks, err := svc.ListCooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, cooks)
}

func TestCatalogService_DeleteCook(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	cook, err := svc.CreateCook(ctx, CreateCookRequest{
		FirstName: "Eleni", BirthDate: "1980-07-20", Class: "chef", CuisineIDs: []int64{greek.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCook(ctx, cook.ID))

	_, err = svc.GetCook(ctx, cook.ID)
	requireCode(t, err, domainerrors.CodeNotFound)

	err = svc.DeleteCook(ctx, cook.ID)
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestCatalogService_Recipes(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	italian, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Italian"})
	require.NoError(t, err)

	r, err := svc.CreateRecipe(ctx, CreateRecipeRequest{
		Name: "Tiramisu", CuisineID: italian.ID, Category: "dessert", Difficulty: 2,
	})
	require.NoError(t, err)

	list, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []RecipeSummary{{
		ID: r.ID, Name: "Tiramisu", Category: "dessert", CuisineName: "Italian", Difficulty: 2,
	}}, list)

	detail, err := svc.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Italian", detail.CuisineName)
	assert.Zero(t, detail.Appearances)

	_, err = svc.CreateRecipe(ctx, CreateRecipeRequest{Name: "tiramisu", CuisineID: italian.ID, Difficulty: 1})
	requireCode(t, err, domainerrors.CodeAlreadyExists)

	_, err = svc.CreateRecipe(ctx, CreateRecipeRequest{Name: "Pasta", CuisineID: 999, Difficulty: 1})
	requireCode(t, err, domainerrors.CodeValidation)

	_, err = svc.CreateRecipe(ctx, CreateRecipeRequest{Name: "Pasta", CuisineID: italian.ID, Difficulty: 6})
	requireCode(t, err, domainerrors.CodeValidation)

	require.NoError(t, svc.DeleteRecipe(ctx, r.ID))
	_, err = svc.GetRecipe(ctx, r.ID)
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestCatalogService_KeepsSearchIndexCurrent(t *testing.T) {
	svc, _, idx := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	r, err := svc.CreateRecipe(ctx, CreateRecipeRequest{Name: "Moussaka", CuisineID: greek.ID, Difficulty: 4})
	require.NoError(t, err)

	res, err := idx.Search(ctx, search.Params{Query: "moussaka"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, []string{"Greek"}, res.Hits[0].Cuisines)

	// Renaming the cuisine updates the denormalized name on the recipe.
	_, err = svc.RenameCuisine(ctx, greek.ID, CuisineRequest{Name: "Hellenic"})
	require.NoError(t, err)
	res, err = idx.Search(ctx, search.Params{Query: "hellenic", Type: search.DocTypeRecipe})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, r.ID, res.Hits[0].ID)

	require.NoError(t, svc.DeleteRecipe(ctx, r.ID))
	res, err = idx.Search(ctx, search.Params{Query: "moussaka"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestCatalogService_EnsureIndex(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	// Populate the store without an index.
	seedCatalog(t, NewCatalogService(s, nil, discardLogger()), 3)

	idx, err := search.Open(search.Options{})
	require.NoError(t, err)
	defer idx.Close()

	svc := NewCatalogService(s, idx, discardLogger())
	require.NoError(t, svc.EnsureIndex(ctx))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3+6+6), count)

	// A populated index is left alone.
	require.NoError(t, idx.Delete(search.DocTypeCuisine, 1))
	require.NoError(t, svc.EnsureIndex(ctx))
	count, err = idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(14), count)
}

func TestCatalogService_UpdateCook(t *testing.T) {
	svc, _, idx := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	italian, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Italian"})
	require.NoError(t, err)
	cook, err := svc.CreateCook(ctx, CreateCookRequest{
		FirstName: "Eleni", LastName: "Papadaki", BirthDate: "1980-07-20", Class: "B cook",
		YearsOfExperience: 4, CuisineIDs: []int64{greek.ID},
	})
	require.NoError(t, err)

	class := "chef"
	years := 0
	cuisines := []int64{italian.ID}
	updated, err := svc.UpdateCook(ctx, cook.ID, UpdateCookRequest{
		Class:             &class,
		YearsOfExperience: &years,
		CuisineIDs:        &cuisines,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CookClassChef, updated.Class)
	assert.Zero(t, updated.YearsOfExperience)

	detail, err := svc.GetCook(ctx, cook.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eleni Papadaki", detail.Name)
	assert.Equal(t, []domain.Cuisine{{ID: italian.ID, Name: "Italian"}}, detail.Cuisines)

	res, err := idx.Search(ctx, search.Params{Query: "papadaki"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, []string{"Italian"}, res.Hits[0].Cuisines)
}

func TestCatalogService_UpdateCook_Invalid(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	cook, err := svc.CreateCook(ctx, CreateCookRequest{
		FirstName: "Eleni", BirthDate: "1980-07-20", Class: "chef", CuisineIDs: []int64{greek.ID},
	})
	require.NoError(t, err)

	blank := "  "
	future := "2030-01-01"
	class := "line cook"
	none := []int64{}
	unknown := []int64{greek.ID, 999}

	tests := []struct {
		name string
		id   int64
		req  UpdateCookRequest
		code domainerrors.Code
	}{
		{"blank first name", cook.ID, UpdateCookRequest{FirstName: &blank}, domainerrors.CodeValidation},
		{"future birth date", cook.ID, UpdateCookRequest{BirthDate: &future}, domainerrors.CodeValidation},
		{"unknown class", cook.ID, UpdateCookRequest{Class: &class}, domainerrors.CodeValidation},
		{"no cuisines", cook.ID, UpdateCookRequest{CuisineIDs: &none}, domainerrors.CodeValidation},
		{"unknown cuisine", cook.ID, UpdateCookRequest{CuisineIDs: &unknown}, domainerrors.CodeValidation},
		{"missing cook", 999, UpdateCookRequest{}, domainerrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCook(ctx, tt.id, tt.req)
			requireCode(t, err, tt.code)
		})
	}

	detail, err := svc.GetCook(ctx, cook.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Cuisine{{ID: greek.ID, Name: "Greek"}}, detail.Cuisines)
	assert.Equal(t, domain.CookClassChef, detail.Class)
}

func TestCatalogService_RecipeParts(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	aubergine, err := svc.CreateIngredient(ctx, IngredientRequest{Name: "Aubergine", Calories: 25})
	require.NoError(t, err)
	mince, err := svc.CreateIngredient(ctx, IngredientRequest{Name: "Lamb mince", Calories: 282})
	require.NoError(t, err)
	dish, err := svc.CreateTool(ctx, ToolRequest{Name: "Baking dish"})
	require.NoError(t, err)

	r, err := svc.CreateRecipe(ctx, CreateRecipeRequest{
		Name:       "Moussaka",
		CuisineID:  greek.ID,
		Difficulty: 4,
		Steps:      "  Fry the aubergine.\nLayer and bake.  ",
		Nutrition:  &NutritionRequest{Calories: 560, Carbs: 22, Fat: 38, Protein: 29},
		Ingredients: []RecipeIngredientRequest{
			{IngredientID: aubergine.ID, Amount: "2 large", Main: true},
			{IngredientID: mince.ID, Amount: "500  g"},
		},
		ToolIDs: []int64{dish.ID},
	})
	require.NoError(t, err)

	detail, err := svc.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fry the aubergine.\nLayer and bake.", detail.Steps)
	assert.Equal(t, &domain.Nutrition{Calories: 560, Carbs: 22, Fat: 38, Protein: 29}, detail.Nutrition)
	assert.Equal(t, []domain.RecipeIngredient{
		{IngredientID: aubergine.ID, Name: "Aubergine", Amount: "2 large", Main: true},
		{IngredientID: mince.ID, Name: "Lamb mince", Amount: "500 g"},
	}, detail.Ingredients)
	assert.Equal(t, []domain.Tool{{ID: dish.ID, Name: "Baking dish"}}, detail.Tools)

	tests := []struct {
		name string
		req  CreateRecipeRequest
	}{
		{"two main ingredients", CreateRecipeRequest{
			Name: "Pastitsio", CuisineID: greek.ID, Difficulty: 3,
			Ingredients: []RecipeIngredientRequest{
				{IngredientID: aubergine.ID, Main: true}, {IngredientID: mince.ID, Main: true},
			},
		}},
		{"repeated ingredient", CreateRecipeRequest{
			Name: "Pastitsio", CuisineID: greek.ID, Difficulty: 3,
			Ingredients: []RecipeIngredientRequest{{IngredientID: mince.ID}, {IngredientID: mince.ID}},
		}},
		{"unknown ingredient", CreateRecipeRequest{
			Name: "Pastitsio", CuisineID: greek.ID, Difficulty: 3,
			Ingredients: []RecipeIngredientRequest{{IngredientID: 999}},
		}},
		{"unknown tool", CreateRecipeRequest{
			Name: "Pastitsio", CuisineID: greek.ID, Difficulty: 3, ToolIDs: []int64{999},
		}},
		{"negative calories", CreateRecipeRequest{
			Name: "Pastitsio", CuisineID: greek.ID, Difficulty: 3, Nutrition: &NutritionRequest{Calories: -1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(ctx, tt.req)
			requireCode(t, err, domainerrors.CodeValidation)
		})
	}

	// Ingredients and tools that recipes use cannot be removed.
	requireCode(t, svc.DeleteIngredient(ctx, mince.ID), domainerrors.CodeConflict)
	requireCode(t, svc.DeleteTool(ctx, dish.ID), domainerrors.CodeConflict)
}

func TestCatalogService_UpdateRecipe(t *testing.T) {
	svc, _, idx := setupCatalog(t)
	ctx := context.Background()

	greek, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Greek"})
	require.NoError(t, err)
	cypriot, err := svc.CreateCuisine(ctx, CuisineRequest{Name: "Cypriot"})
	require.NoError(t, err)
	halloumi, err := svc.CreateIngredient(ctx, IngredientRequest{Name: "Halloumi", Calories: 321})
	require.NoError(t, err)
	grill, err := svc.CreateTool(ctx, ToolRequest{Name: "Grill pan"})
	require.NoError(t, err)

	r, err := svc.CreateRecipe(ctx, CreateRecipeRequest{
		Name: "Grilled cheese", CuisineID: greek.ID, Difficulty: 1, Category: "starter",
		ToolIDs: []int64{grill.ID},
	})
	require.NoError(t, err)

	name := "Grilled halloumi"
	difficulty := 2
	ingredients := []RecipeIngredientRequest{{IngredientID: halloumi.ID, Amount: "250 g", Main: true}}
	updated, err := svc.UpdateRecipe(ctx, r.ID, UpdateRecipeRequest{
		Name:        &name,
		CuisineID:   &cypriot.ID,
		Difficulty:  &difficulty,
		Ingredients: &ingredients,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grilled halloumi", updated.Name)

	detail, err := svc.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cypriot", detail.CuisineName)
	assert.Equal(t, "starter", detail.Category)
	assert.Equal(t, 2, detail.Difficulty)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Halloumi", detail.Ingredients[0].Name)
	// Tools were not part of the update and stay.
	assert.Equal(t, []domain.Tool{{ID: grill.ID, Name: "Grill pan"}}, detail.Tools)

	res, err := idx.Search(ctx, search.Params{Query: "halloumi"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, []string{"Cypriot"}, res.Hits[0].Cuisines)

	_, err = svc.UpdateRecipe(ctx, 999, UpdateRecipeRequest{Name: &name})
	requireCode(t, err, domainerrors.CodeNotFound)

	bad := 6
	_, err = svc.UpdateRecipe(ctx, r.ID, UpdateRecipeRequest{Difficulty: &bad})
	requireCode(t, err, domainerrors.CodeValidation)

	missing := int64(999)
	_, err = svc.UpdateRecipe(ctx, r.ID, UpdateRecipeRequest{CuisineID: &missing})
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestCatalogService_UpdateRecipe_FeaturedKeepsCuisine(t *testing.T) {
	gen, catalog := setupSeededGeneration(t)
	ctx := context.Background()

	_, err := gen.Generate(ctx, GenerateRequest{StartYear: 2020, EndYear: 2020})
	require.NoError(t, err)

	ep, err := catalog.store.GetEpisode(ctx, 1)
	require.NoError(t, err)
	featured := ep.Assignments[0]

	var other int64
	cuisines, err := catalog.ListCuisines(ctx)
	require.NoError(t, err)
	for _, c := range cuisines {
		if c.ID != featured.CuisineID {
			other = c.ID
			break
		}
	}

	_, err = catalog.UpdateRecipe(ctx, featured.RecipeID, UpdateRecipeRequest{CuisineID: &other})
	requireCode(t, err, domainerrors.CodeConflict)

	// Other fields can still change.
	steps := "Plate and serve."
	_, err = catalog.UpdateRecipe(ctx, featured.RecipeID, UpdateRecipeRequest{
		CuisineID: &featured.CuisineID,
		Steps:     &steps,
	})
	require.NoError(t, err)

	detail, err := catalog.GetRecipe(ctx, featured.RecipeID)
	require.NoError(t, err)
	assert.Equal(t, featured.CuisineID, detail.CuisineID)
	assert.Equal(t, steps, detail.Steps)
	assert.Positive(t, detail.Appearances)
}
