package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientHandlers(t *testing.T) {
	ts := setupTestServer(t, testOptions{})

	resp := ts.api.Post("/api/v1/ingredients", map[string]any{"name": " Feta  cheese ", "calories": 264})
	require.Equal(t, 201, resp.Code, resp.Body.String())
	feta := decode[IngredientResponse](t, resp)
	assert.Equal(t, IngredientResponse{ID: feta.ID, Name: "Feta cheese", Calories: 264}, feta)

	requireError(t, ts.api.Post("/api/v1/ingredients", map[string]any{"name": "FETA CHEESE"}), 409, "ALREADY_EXISTS")
	requireError(t, ts.api.Post("/api/v1/ingredients", map[string]any{"name": "Salt", "calories": -1}), 422, "VALIDATION")

	path := fmt.Sprintf("/api/v1/ingredients/%d", feta.ID)
	resp = ts.api.Patch(path, map[string]any{"calories": 250})
	require.Equal(t, 200, resp.Code, resp.Body.String())
	assert.Equal(t, IngredientResponse{ID: feta.ID, Name: "Feta cheese", Calories: 250}, decode[IngredientResponse](t, resp))
	assert.Equal(t, "Feta cheese", decode[IngredientResponse](t, ts.api.Get(path)).Name)

	list := decode[struct {
		Ingredients []IngredientResponse `json:"ingredients"`
	}](t, ts.api.Get("/api/v1/ingredients"))
	require.Len(t, list.Ingredients, 1)

	// In use by a recipe.
	greek := decode[CuisineResponse](t, ts.api.Post("/api/v1/cuisines", map[string]any{"name": "Greek"}))
	recipe := decode[RecipeResponse](t, ts.api.Post("/api/v1/recipes", map[string]any{
		"name":        "Spanakopita",
		"cuisine_id":  greek.ID,
		"difficulty":  3,
		"ingredients": []map[string]any{{"ingredient_id": feta.ID, "amount": "200 g"}},
	}))
	requireError(t, ts.api.Delete(path), 409, "CONFLICT")

	require.Equal(t, 200, ts.api.Delete(fmt.Sprintf("/api/v1/recipes/%d", recipe.ID)).Code)
	require.Equal(t, 200, ts.api.Delete(path).Code)
	requireError(t, ts.api.Get(path), 404, "NOT_FOUND")
}

func TestToolHandlers(t *testing.T) {
	ts := setupTestServer(t, testOptions{adminKey: testAdminKey})
	key := "X-Admin-Key: " + testAdminKey

	requireError(t, ts.api.Post("/api/v1/tools", map[string]any{"name": "Wok"}), 401, "UNAUTHORIZED")

	resp := ts.api.Post("/api/v1/tools", key, map[string]any{"name": "Wok"})
	require.Equal(t, 201, resp.Code, resp.Body.String())
	wok := decode[ToolResponse](t, resp)

	path := fmt.Sprintf("/api/v1/tools/%d", wok.ID)
	resp = ts.api.Patch(path, key, map[string]any{"name": "Carbon steel wok"})
	require.Equal(t, 200, resp.Code, resp.Body.String())
	assert.Equal(t, "Carbon steel wok", decode[ToolResponse](t, resp).Name)

	list := decode[struct {
		Tools []ToolResponse `json:"tools"`
	}](t, ts.api.Get("/api/v1/tools"))
	assert.Equal(t, []ToolResponse{{ID: wok.ID, Name: "Carbon steel wok"}}, list.Tools)

	requireError(t, ts.api.Patch("/api/v1/tools/999", key, map[string]any{"name": "Pan"}), 404, "NOT_FOUND")
	requireError(t, ts.api.Delete(path), 401, "UNAUTHORIZED")
	require.Equal(t, 200, ts.api.Delete(path, key).Code)
	requireError(t, ts.api.Get(path), 404, "NOT_FOUND")
}
