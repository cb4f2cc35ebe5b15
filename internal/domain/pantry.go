package domain

// Ingredient is a food recipes are made from.
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"` // kcal per 100 g
}

// Tool is a piece of kitchen equipment a recipe calls for.
type Tool struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
