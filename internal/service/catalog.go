package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/normalize"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/validation"
)

// BirthDateLayout is the wire format of cook birth dates.
const BirthDateLayout = "2006-01-02"

// CatalogService manages the reference data episodes are drawn from:
// cuisines, cooks and recipes, plus the ingredients and tools recipes call
// for. Writes keep the search index current.
type CatalogService struct {
	store     store.Store
	index     *search.Index // Optional
	logger    *slog.Logger
	validator *validation.Validator
	now       func() time.Time
}

// NewCatalogService creates a catalogue service. index may be nil.
func NewCatalogService(s store.Store, index *search.Index, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     s,
		index:     index,
		logger:    logger,
		validator: validation.New(),
		now:       time.Now,
	}
}

// --- Cuisines ---

// CuisineRequest names a cuisine.
type CuisineRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// ListCuisines returns every cuisine ordered by ID.
func (s *CatalogService) ListCuisines(ctx context.Context) ([]domain.Cuisine, error) {
	cuisines, err := s.store.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}
	if cuisines == nil {
		cuisines = []domain.Cuisine{}
	}
	return cuisines, nil
}

// GetCuisine returns a single cuisine.
func (s *CatalogService) GetCuisine(ctx context.Context, id int64) (*domain.Cuisine, error) {
	c, err := s.store.GetCuisine(ctx, id)
	if err != nil {
		return nil, storeError(err, "cuisine")
	}
	return c, nil
}

// CreateCuisine adds a cuisine. Names must be unique ignoring case and accents.
func (s *CatalogService) CreateCuisine(ctx context.Context, req CuisineRequest) (*domain.Cuisine, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c := &domain.Cuisine{Name: normalize.Name(req.Name)}
	if err := s.store.CreateCuisine(ctx, c); err != nil {
		return nil, storeError(err, "cuisine")
	}

	s.indexPut(search.CuisineDocument(c))
	s.logger.Info("cuisine created", "id", c.ID, "name", c.Name)
	return c, nil
}

// RenameCuisine changes a cuisine's name.
func (s *CatalogService) RenameCuisine(ctx context.Context, id int64, req CuisineRequest) (*domain.Cuisine, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	name := normalize.Name(req.Name)
	if err := s.store.RenameCuisine(ctx, id, name); err != nil {
		return nil, storeError(err, "cuisine")
	}

	// Cooks and recipes carry the cuisine name in their documents.
	s.reindex(ctx)
	s.logger.Info("cuisine renamed", "id", id, "name", name)
	return &domain.Cuisine{ID: id, Name: name}, nil
}

// DeleteCuisine removes a cuisine and every cook qualification for it. It
// fails with CONFLICT while recipes or episodes use the cuisine.
func (s *CatalogService) DeleteCuisine(ctx context.Context, id int64) error {
	if err := s.store.DeleteCuisine(ctx, id); err != nil {
		return storeError(err, "cuisine")
	}

	s.reindex(ctx)
	s.logger.Info("cuisine deleted", "id", id)
	return nil
}

// --- Cooks ---

// CreateCookRequest contains the fields of a new cook.
type CreateCookRequest struct {
	FirstName         string  `json:"first_name" validate:"required,notblank,max=100"`
	LastName          string  `json:"last_name" validate:"max=100"`
	BirthDate         string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Phone             string  `json:"phone,omitempty" validate:"max=32"`
	YearsOfExperience int     `json:"years_of_experience" validate:"min=0,max=80"`
	Class             string  `json:"class" validate:"required,cookclass"`
	CuisineIDs        []int64 `json:"cuisine_ids" validate:"min=1,unique,dive,gte=1"`
}

// UpdateCookRequest changes some fields of a cook. Nil fields keep their
// value; CuisineIDs replaces the qualified cuisines when set.
type UpdateCookRequest struct {
	FirstName         *string  `json:"first_name,omitempty" validate:"omitempty,notblank,max=100"`
	LastName          *string  `json:"last_name,omitempty" validate:"omitempty,max=100"`
	BirthDate         *string  `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Phone             *string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Class             *string  `json:"class,omitempty" validate:"omitempty,cookclass"`
	CuisineIDs        *[]int64 `json:"cuisine_ids,omitempty" validate:"omitempty,min=1,unique,dive,gte=1"`
}

// CookSummary is the list view of a cook.
type CookSummary struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Age   int              `json:"age"`
	Class domain.CookClass `json:"class"`
}

// CookDetail is the full view of a cook with history.
type CookDetail struct {
	domain.Cook
	Name     string           `json:"name"`
	Age      int              `json:"age"`
	Cuisines []domain.Cuisine `json:"cuisines"`
	domain.CookStats
}

// ListCooks returns every cook ordered by ID.
func (s *CatalogService) ListCooks(ctx context.Context) ([]CookSummary, error) {
	cooks, err := s.store.ListCooks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]CookSummary, len(cooks))
	for i := range cooks {
		c := &cooks[i]
		out[i] = CookSummary{ID: c.ID, Name: c.FullName(), Age: c.AgeAt(now), Class: c.Class}
	}
	return out, nil
}

// GetCook returns a cook with qualified cuisines and appearance counts.
func (s *CatalogService) GetCook(ctx context.Context, id int64) (*CookDetail, error) {
	cook, err := s.store.GetCook(ctx, id)
	if err != nil {
		return nil, storeError(err, "cook")
	}

	stats, err := s.store.GetCookStats(ctx, id)
	if err != nil {
		return nil, storeError(err, "cook")
	}

	names, err := s.cuisineNames(ctx)
	if err != nil {
		return nil, err
	}

	detail := &CookDetail{
		Cook:      *cook,
		Name:      cook.FullName(),
		Age:       cook.AgeAt(s.now()),
		Cuisines:  make([]domain.Cuisine, 0, len(cook.CuisineIDs)),
		CookStats: *stats,
	}
	for _, cid := range cook.CuisineIDs {
		detail.Cuisines = append(detail.Cuisines, domain.Cuisine{ID: cid, Name: names[cid]})
	}
	return detail, nil
}

// CreateCook adds a cook qualified for the given cuisines.
func (s *CatalogService) CreateCook(ctx context.Context, req CreateCookRequest) (*domain.Cook, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	birth, err := s.parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	cook := &domain.Cook{
		FirstName:         normalize.Name(req.FirstName),
		LastName:          normalize.Name(req.LastName),
		BirthDate:         birth,
		Phone:             normalize.Phone(req.Phone),
		YearsOfExperience: req.YearsOfExperience,
		Class:             domain.CookClass(req.Class),
		CuisineIDs:        append([]int64(nil), req.CuisineIDs...),
	}
	if err := s.store.CreateCook(ctx, cook); err != nil {
		return nil, storeError(err, "cook")
	}

	if names, err := s.cuisineNames(ctx); err == nil {
		s.indexPut(search.CookDocument(cook, names))
	}
	s.logger.Info("cook created", "id", cook.ID, "name", cook.FullName(), "cuisines", len(cook.CuisineIDs))
	return cook, nil
}

// UpdateCook changes a cook. Changing the qualified cuisines affects future
// episodes only; recorded appearances keep their cuisine.
func (s *CatalogService) UpdateCook(ctx context.Context, id int64, req UpdateCookRequest) (*domain.Cook, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	cook, err := s.store.GetCook(ctx, id)
	if err != nil {
		return nil, storeError(err, "cook")
	}

	if req.FirstName != nil {
		cook.FirstName = normalize.Name(*req.FirstName)
	}
	if req.LastName != nil {
		cook.LastName = normalize.Name(*req.LastName)
	}
	if req.BirthDate != nil {
		birth, err := s.parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		cook.BirthDate = birth
	}
	if req.Phone != nil {
		cook.Phone = normalize.Phone(*req.Phone)
	}
	if req.YearsOfExperience != nil {
		cook.YearsOfExperience = *req.YearsOfExperience
	}
	if req.Class != nil {
		cook.Class = domain.CookClass(*req.Class)
	}
	if req.CuisineIDs != nil {
		cook.CuisineIDs = append([]int64(nil), *req.CuisineIDs...)
	}

	if err := s.store.UpdateCook(ctx, cook); err != nil {
		return nil, storeError(err, "cook")
	}

	if names, err := s.cuisineNames(ctx); err == nil {
		s.indexPut(search.CookDocument(cook, names))
	}
	s.logger.Info("cook updated", "id", cook.ID, "name", cook.FullName(), "cuisines", len(cook.CuisineIDs))
	return cook, nil
}

func (s *CatalogService) parseBirthDate(v string) (time.Time, error) {
	birth, err := time.Parse(BirthDateLayout, v)
	if err != nil {
		return time.Time{}, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"birth_date": "must be a date formatted as " + BirthDateLayout})
	}
	if birth.After(s.now()) {
		return time.Time{}, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"birth_date": "must not be in the future"})
	}
	return birth, nil
}

// DeleteCook removes a cook. It fails with CONFLICT once the cook has
// appeared in an episode.
func (s *CatalogService) DeleteCook(ctx context.Context, id int64) error {
	if err := s.store.DeleteCook(ctx, id); err != nil {
		return storeError(err, "cook")
	}

	s.indexDelete(search.DocTypeCook, id)
	s.logger.Info("cook deleted", "id", id)
	return nil
}

// --- Recipes ---

// CreateRecipeRequest contains the fields of a new recipe.
type CreateRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,notblank,max=200"`
	CuisineID   int64                     `json:"cuisine_id" validate:"required,gte=1"`
	Category    string                    `json:"category,omitempty" validate:"max=100"`
	Difficulty  int                       `json:"difficulty" validate:"required,min=1,max=5"`
	Description string                    `json:"description,omitempty" validate:"max=2000"`
	Steps       string                    `json:"steps,omitempty" validate:"max=10000"`
	Nutrition   *NutritionRequest         `json:"nutrition,omitempty"`
	Ingredients []RecipeIngredientRequest `json:"ingredients,omitempty" validate:"unique=IngredientID,dive"`
	ToolIDs     []int64                   `json:"tool_ids,omitempty" validate:"unique,dive,gte=1"`
}

// UpdateRecipeRequest changes some fields of a recipe. Nil fields keep their
// value; Ingredients and ToolIDs replace the lists when set.
type UpdateRecipeRequest struct {
	Name        *string                    `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	CuisineID   *int64                     `json:"cuisine_id,omitempty" validate:"omitempty,gte=1"`
	Category    *string                    `json:"category,omitempty" validate:"omitempty,max=100"`
	Difficulty  *int                       `json:"difficulty,omitempty" validate:"omitempty,min=1,max=5"`
	Description *string                    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Steps       *string                    `json:"steps,omitempty" validate:"omitempty,max=10000"`
	Nutrition   *NutritionRequest          `json:"nutrition,omitempty"`
	Ingredients *[]RecipeIngredientRequest `json:"ingredients,omitempty" validate:"omitempty,unique=IngredientID,dive"`
	ToolIDs     *[]int64                   `json:"tool_ids,omitempty" validate:"omitempty,unique,dive,gte=1"`
}

// RecipeIngredientRequest names an ingredient of a recipe.
type RecipeIngredientRequest struct {
	IngredientID int64  `json:"ingredient_id" validate:"required,gte=1"`
	Amount       string `json:"amount,omitempty" validate:"max=100"`
	Main         bool   `json:"main,omitempty"`
}

// NutritionRequest is the nutrition of one serving.
type NutritionRequest struct {
	Calories float64 `json:"calories" validate:"gte=0,lte=10000"`
	Carbs    float64 `json:"carbs" validate:"gte=0,lte=1000"`
	Fat      float64 `json:"fat" validate:"gte=0,lte=1000"`
	Protein  float64 `json:"protein" validate:"gte=0,lte=1000"`
}

func (n *NutritionRequest) nutrition() *domain.Nutrition {
	if n == nil {
		return nil
	}
	return &domain.Nutrition{Calories: n.Calories, Carbs: n.Carbs, Fat: n.Fat, Protein: n.Protein}
}

func recipeIngredients(reqs []RecipeIngredientRequest) ([]domain.RecipeIngredient, error) {
	var (
		out  []domain.RecipeIngredient
		main int
	)
	for _, r := range reqs {
		if r.Main {
			main++
		}
		out = append(out, domain.RecipeIngredient{
			IngredientID: r.IngredientID,
			Amount:       normalize.Name(r.Amount),
			Main:         r.Main,
		})
	}
	if main > 1 {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"ingredients": "at most one ingredient can be the main one"})
	}
	return out, nil
}

func recipeTools(ids []int64) []domain.Tool {
	var out []domain.Tool
	for _, id := range ids {
		out = append(out, domain.Tool{ID: id})
	}
	return out
}

// RecipeSummary is the list view of a recipe.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	CuisineName string `json:"cuisine_name"`
	Difficulty  int    `json:"difficulty"`
}

// RecipeDetail is the full view of a recipe.
type RecipeDetail struct {
	domain.Recipe
	CuisineName string `json:"cuisine_name"`
	Appearances int    `json:"appearances"` // Episodes that featured the recipe
}

// ListRecipes returns every recipe ordered by ID.
func (s *CatalogService) ListRecipes(ctx context.Context) ([]RecipeSummary, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.cuisineNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeSummary, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeSummary{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			CuisineName: names[r.CuisineID],
			Difficulty:  r.Difficulty,
		}
	}
	return out, nil
}

// GetRecipe returns a recipe with its cuisine name and appearance count.
func (s *CatalogService) GetRecipe(ctx context.Context, id int64) (*RecipeDetail, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, storeError(err, "recipe")
	}

	n, err := s.store.CountRecipeAppearances(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &RecipeDetail{Recipe: *r, Appearances: n}
	if c, err := s.store.GetCuisine(ctx, r.CuisineID); err == nil {
		detail.CuisineName = c.Name
	}
	return detail, nil
}

// CreateRecipe adds a recipe to a cuisine.
func (s *CatalogService) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ingredients, err := recipeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}

	r := &domain.Recipe{
		Name:        normalize.Name(req.Name),
		CuisineID:   req.CuisineID,
		Category:    normalize.Name(req.Category),
		Difficulty:  req.Difficulty,
		Description: normalize.Name(req.Description),
		Steps:       strings.TrimSpace(req.Steps),
		Nutrition:   req.Nutrition.nutrition(),
		Ingredients: ingredients,
		Tools:       recipeTools(req.ToolIDs),
	}
	if err := s.store.CreateRecipe(ctx, r); err != nil {
		return nil, storeError(err, "recipe")
	}

	s.indexRecipe(ctx, r)
	s.logger.Info("recipe created", "id", r.ID, "name", r.Name, "cuisine_id", r.CuisineID,
		"ingredients", len(r.Ingredients), "tools", len(r.Tools))
	return r, nil
}

// UpdateRecipe changes a recipe. A recipe that episodes featured keeps its
// cuisine, since those episodes assigned it under that cuisine.
func (s *CatalogService) UpdateRecipe(ctx context.Context, id int64, req UpdateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, storeError(err, "recipe")
	}

	if req.CuisineID != nil && *req.CuisineID != r.CuisineID {
		n, err := s.store.CountRecipeAppearances(ctx, id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domainerrors.Conflictf("recipe %d appeared in %d episodes and cannot change cuisine", id, n)
		}
		r.CuisineID = *req.CuisineID
	}
	if req.Name != nil {
		r.Name = normalize.Name(*req.Name)
	}
	if req.Category != nil {
		r.Category = normalize.Name(*req.Category)
	}
	if req.Difficulty != nil {
		r.Difficulty = *req.Difficulty
	}
	if req.Description != nil {
		r.Description = normalize.Name(*req.Description)
	}
	if req.Steps != nil {
		r.Steps = strings.TrimSpace(*req.Steps)
	}
	if req.Nutrition != nil {
		r.Nutrition = req.Nutrition.nutrition()
	}
	if req.Ingredients != nil {
		if r.Ingredients, err = recipeIngredients(*req.Ingredients); err != nil {
			return nil, err
		}
	}
	if req.ToolIDs != nil {
		r.Tools = recipeTools(*req.ToolIDs)
	}

	if err := s.store.UpdateRecipe(ctx, r); err != nil {
		return nil, storeError(err, "recipe")
	}

	s.indexRecipe(ctx, r)
	s.logger.Info("recipe updated", "id", r.ID, "name", r.Name, "cuisine_id", r.CuisineID)
	return r, nil
}

func (s *CatalogService) indexRecipe(ctx context.Context, r *domain.Recipe) {
	var cuisineName string
	if c, err := s.store.GetCuisine(ctx, r.CuisineID); err == nil {
		cuisineName = c.Name
	}
	s.indexPut(search.RecipeDocument(r, cuisineName))
}

// DeleteRecipe removes a recipe. It fails with CONFLICT once an episode
// featured it.
func (s *CatalogService) DeleteRecipe(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return storeError(err, "recipe")
	}

	s.indexDelete(search.DocTypeRecipe, id)
	s.logger.Info("recipe deleted", "id", id)
	return nil
}

// --- Search index maintenance ---

// RebuildIndex replaces the search index with the current catalogue.
func (s *CatalogService) RebuildIndex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}

	docs, err := s.documents(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalogue: %w", err)
	}
	if err := s.index.Rebuild(docs); err != nil {
		return 0, fmt.Errorf("rebuild search index: %w", err)
	}
	return len(docs), nil
}

// EnsureIndex rebuilds the search index when it is empty.
func (s *CatalogService) EnsureIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}

	count, err := s.index.Count()
	if err != nil {
		return fmt.Errorf("count search documents: %w", err)
	}
	if count > 0 {
		return nil
	}

	n, err := s.RebuildIndex(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("search index populated", "documents", n)
	return nil
}

// documents builds one search document per catalogue entity.
func (s *CatalogService) documents(ctx context.Context) ([]*search.Document, error) {
	cuisines, err := s.store.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}
	cooks, err := s.store.ListCooks(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(cuisines))
	docs := make([]*search.Document, 0, len(cuisines)+len(cooks)+len(recipes))
	for i := range cuisines {
		names[cuisines[i].ID] = cuisines[i].Name
		docs = append(docs, search.CuisineDocument(&cuisines[i]))
	}
	for i := range cooks {
		docs = append(docs, search.CookDocument(&cooks[i], names))
	}
	for i := range recipes {
		docs = append(docs, search.RecipeDocument(&recipes[i], names[recipes[i].CuisineID]))
	}
	return docs, nil
}

func (s *CatalogService) cuisineNames(ctx context.Context) (map[int64]string, error) {
	cuisines, err := s.store.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cuisines))
	for _, c := range cuisines {
		names[c.ID] = c.Name
	}
	return names, nil
}

// Index failures are logged and never fail the write; the store is the
// source of truth and the next rebuild repairs the index.

func (s *CatalogService) indexPut(doc *search.Document) {
	if s.index == nil {
		return
	}
	if err := s.index.Put(doc); err != nil {
		s.logger.Warn("failed to index document", "id", doc.ID(), "error", err)
	}
}

func (s *CatalogService) indexDelete(t search.DocType, id int64) {
	if s.index == nil {
		return
	}
	if err := s.index.Delete(t, id); err != nil {
		s.logger.Warn("failed to remove document from index", "id", search.DocID(t, id), "error", err)
	}
}

func (s *CatalogService) reindex(ctx context.Context) {
	if _, err := s.RebuildIndex(ctx); err != nil {
		s.logger.Warn("failed to rebuild search index", "error", err)
	}
}
