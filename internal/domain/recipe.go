package domain

// Recipe is a dish that can be cooked in an episode.
type Recipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CuisineID   int64  `json:"cuisine_id"`
	Category    string `json:"category,omitempty"` // e.g. "main course", "dessert"
	Difficulty  int    `json:"difficulty"`         // 1 (easy) .. 5 (hard)
	Description string `json:"description,omitempty"`
	Steps       string `json:"steps,omitempty"`

	// Loaded by single-recipe reads only.
	Nutrition   *Nutrition         `json:"nutrition,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
	Tools       []Tool             `json:"tools,omitempty"`
}

// RecipeIngredient is an ingredient as a recipe uses it.
type RecipeIngredient struct {
	IngredientID int64  `json:"ingredient_id"`
	Name         string `json:"name,omitempty"`
	Amount       string `json:"amount,omitempty"` // Free text, e.g. "200 g"
	Main         bool   `json:"main"`
}

// Nutrition is the content of one serving. Macronutrients are in grams.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
}
