package domain

// Cuisine is a regional cooking style. Every recipe belongs to exactly one cuisine
// and cooks are qualified for one or more.
type Cuisine struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
