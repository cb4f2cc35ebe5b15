package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns every recipe with its cuisine",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe and how many episodes featured it",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a recipe of an existing cuisine",
		Tags:          []string{"Recipes"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Changes the given fields of a recipe. Ingredients and tools replace the current lists. A recipe featured in an episode keeps its cuisine",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Deletes a recipe. Fails once an episode featured it",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// RecipeSummaryResponse is a recipe in list responses.
type RecipeSummaryResponse struct {
	ID          int64  `json:"id" doc:"Recipe ID"`
	Name        string `json:"name" doc:"Recipe name"`
	Category    string `json:"category,omitempty" doc:"Category, e.g. dessert"`
	CuisineName string `json:"cuisine_name" doc:"Cuisine the recipe belongs to"`
	Difficulty  int    `json:"difficulty" doc:"Difficulty from 1 (easy) to 5 (hard)"`
}

// RecipeResponse is the full view of a recipe.
type RecipeResponse struct {
	ID          int64  `json:"id" doc:"Recipe ID"`
	Name        string `json:"name" doc:"Recipe name"`
	CuisineID   int64  `json:"cuisine_id" doc:"Cuisine ID"`
	CuisineName string `json:"cuisine_name" doc:"Cuisine name"`
	Category    string `json:"category,omitempty" doc:"Category, e.g. dessert"`
	Difficulty  int    `json:"difficulty" doc:"Difficulty from 1 (easy) to 5 (hard)"`
	Description string `json:"description,omitempty" doc:"Description"`
	Appearances int    `json:"appearances" doc:"Episodes that featured the recipe"`

	Steps       string                     `json:"steps,omitempty" doc:"Preparation steps"`
	Nutrition   *NutritionBody             `json:"nutrition,omitempty" doc:"Nutrition per serving"`
	Ingredients []RecipeIngredientResponse `json:"ingredients" doc:"Ingredients, main ingredient first"`
	Tools       []ToolResponse             `json:"tools" doc:"Tools the recipe calls for"`
}

// RecipeIngredientResponse is an ingredient line of a recipe.
type RecipeIngredientResponse struct {
	IngredientID int64  `json:"ingredient_id" doc:"Ingredient ID"`
	Name         string `json:"name" doc:"Ingredient name"`
	Amount       string `json:"amount,omitempty" doc:"Quantity, e.g. 200 g"`
	Main         bool   `json:"main" doc:"Whether this is the main ingredient"`
}

// NutritionBody is the nutrition of one serving, macronutrients in grams.
type NutritionBody struct {
	Calories float64 `json:"calories" minimum:"0" doc:"Energy in kcal"`
	Carbs    float64 `json:"carbs" minimum:"0" doc:"Carbohydrates in grams"`
	Fat      float64 `json:"fat" minimum:"0" doc:"Fat in grams"`
	Protein  float64 `json:"protein" minimum:"0" doc:"Protein in grams"`
}

type RecipeIngredientBody struct {
	IngredientID int64  `json:"ingredient_id" minimum:"1" doc:"Ingredient ID"`
	Amount       string `json:"amount,omitempty" maxLength:"100" doc:"Quantity, e.g. 200 g"`
	Main         bool   `json:"main,omitempty" doc:"Whether this is the main ingredient"`
}

type ListRecipesOutput struct {
	Body struct {
		Recipes []RecipeSummaryResponse `json:"recipes" doc:"Recipes ordered by ID"`
	}
}

type RecipeOutput struct {
	Body RecipeResponse
}

type RecipeIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Recipe ID"`
}

type CreateRecipeBody struct {
	Name        string `json:"name" minLength:"1" maxLength:"200" doc:"Recipe name"`
	CuisineID   int64  `json:"cuisine_id" minimum:"1" doc:"Cuisine ID"`
	Category    string `json:"category,omitempty" maxLength:"100" doc:"Category, e.g. dessert"`
	Difficulty  int    `json:"difficulty" minimum:"1" maximum:"5" doc:"Difficulty from 1 (easy) to 5 (hard)"`
	Description string `json:"description,omitempty" maxLength:"2000" doc:"Description"`

	Steps       string                 `json:"steps,omitempty" maxLength:"10000" doc:"Preparation steps"`
	Nutrition   *NutritionBody         `json:"nutrition,omitempty" doc:"Nutrition per serving"`
	Ingredients []RecipeIngredientBody `json:"ingredients,omitempty" doc:"Ingredients; at most one may be main"`
	ToolIDs     []int64                `json:"tool_ids,omitempty" doc:"Tools the recipe calls for"`
}

type CreateRecipeInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     CreateRecipeBody
}

type UpdateRecipeBody struct {
	Name        *string                 `json:"name,omitempty" minLength:"1" maxLength:"200" doc:"Recipe name"`
	CuisineID   *int64                  `json:"cuisine_id,omitempty" minimum:"1" doc:"Cuisine ID"`
	Category    *string                 `json:"category,omitempty" maxLength:"100" doc:"Category, e.g. dessert"`
	Difficulty  *int                    `json:"difficulty,omitempty" minimum:"1" maximum:"5" doc:"Difficulty from 1 (easy) to 5 (hard)"`
	Description *string                 `json:"description,omitempty" maxLength:"2000" doc:"Description"`
	Steps       *string                 `json:"steps,omitempty" maxLength:"10000" doc:"Preparation steps"`
	Nutrition   *NutritionBody          `json:"nutrition,omitempty" doc:"Nutrition per serving"`
	Ingredients *[]RecipeIngredientBody `json:"ingredients,omitempty" doc:"Replaces the ingredients"`
	ToolIDs     *[]int64                `json:"tool_ids,omitempty" doc:"Replaces the tools"`
}

type UpdateRecipeInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Recipe ID"`
	Body     UpdateRecipeBody
}

type DeleteRecipeInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Recipe ID"`
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*ListRecipesOutput, error) {
	recipes, err := s.services.Catalog.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListRecipesOutput{}
	out.Body.Recipes = make([]RecipeSummaryResponse, len(recipes))
	for i, r := range recipes {
		out.Body.Recipes[i] = RecipeSummaryResponse(r)
	}
	return out, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeOutput, error) {
	detail, err := s.services.Catalog.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	r, err := s.services.Catalog.CreateRecipe(ctx, service.CreateRecipeRequest{
		Name:        input.Body.Name,
		CuisineID:   input.Body.CuisineID,
		Category:    input.Body.Category,
		Difficulty:  input.Body.Difficulty,
		Description: input.Body.Description,
		Steps:       input.Body.Steps,
		Nutrition:   nutritionRequest(input.Body.Nutrition),
		Ingredients: ingredientRequests(input.Body.Ingredients),
		ToolIDs:     input.Body.ToolIDs,
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Catalog.GetRecipe(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	b := input.Body
	req := service.UpdateRecipeRequest{
		Name:        b.Name,
		CuisineID:   b.CuisineID,
		Category:    b.Category,
		Difficulty:  b.Difficulty,
		Description: b.Description,
		Steps:       b.Steps,
		Nutrition:   nutritionRequest(b.Nutrition),
		ToolIDs:     b.ToolIDs,
	}
	if b.Ingredients != nil {
		ingredients := ingredientRequests(*b.Ingredients)
		req.Ingredients = &ingredients
	}

	if _, err := s.services.Catalog.UpdateRecipe(ctx, input.ID, req); err != nil {
		return nil, err
	}

	detail, err := s.services.Catalog.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *DeleteRecipeInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteRecipe(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func nutritionRequest(b *NutritionBody) *service.NutritionRequest {
	if b == nil {
		return nil
	}
	return &service.NutritionRequest{Calories: b.Calories, Carbs: b.Carbs, Fat: b.Fat, Protein: b.Protein}
}

func ingredientRequests(bodies []RecipeIngredientBody) []service.RecipeIngredientRequest {
	out := make([]service.RecipeIngredientRequest, len(bodies))
	for i, b := range bodies {
		out[i] = service.RecipeIngredientRequest(b)
	}
	return out
}

func mapRecipeDetail(d *service.RecipeDetail) RecipeResponse {
	resp := RecipeResponse{
		ID:          d.ID,
		Name:        d.Name,
		CuisineID:   d.CuisineID,
		CuisineName: d.CuisineName,
		Category:    d.Category,
		Difficulty:  d.Difficulty,
		Description: d.Description,
		Appearances: d.Appearances,
		Steps:       d.Steps,
		Ingredients: make([]RecipeIngredientResponse, len(d.Ingredients)),
		Tools:       make([]ToolResponse, len(d.Tools)),
	}
	if n := d.Nutrition; n != nil {
		resp.Nutrition = &NutritionBody{Calories: n.Calories, Carbs: n.Carbs, Fat: n.Fat, Protein: n.Protein}
	}
	for i, in := range d.Ingredients {
		resp.Ingredients[i] = RecipeIngredientResponse(in)
	}
	for i := range d.Tools {
		resp.Tools[i] = mapToolResponse(&d.Tools[i])
	}
	return resp
}
