// Package search provides full-text search over the reference catalogue using
// Bleve. Cuisines, cooks and recipes share one index and are told apart by type.
package search

import (
	"strconv"
	"strings"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeCuisine DocType = "cuisine"
	DocTypeCook    DocType = "cook"
	DocTypeRecipe  DocType = "recipe"
)

// ParseDocType validates a type filter. Empty means all types.
func ParseDocType(s string) (DocType, bool) {
	switch t := DocType(strings.ToLower(strings.TrimSpace(s))); t {
	case "", DocTypeCuisine, DocTypeCook, DocTypeRecipe:
		return t, true
	default:
		return "", false
	}
}

// Document is the unified document stored in the index.
// Cuisine names are denormalized onto recipes and cooks so that a search for
// "greek" also finds Greek dishes and cooks qualified for Greek cuisine.
type Document struct {
	Type        DocType
	EntityID    int64
	Name        string
	Cuisines    []string // Cuisine names: a recipe's cuisine, a cook's qualifications
	CuisineIDs  []int64
	Category    string // Recipes only
	Class       string // Cooks only
	Difficulty  int    // Recipes only
	Description string
}

// DocID returns the index key, e.g. "recipe-42".
func DocID(t DocType, id int64) string {
	return string(t) + "-" + strconv.FormatInt(id, 10)
}

// ID returns the document's index key.
func (d *Document) ID() string {
	return DocID(d.Type, d.EntityID)
}

// toMap converts the document to the field names used by the mapping.
func (d *Document) toMap() map[string]any {
	m := map[string]any{
		"type":      string(d.Type),
		"entity_id": float64(d.EntityID),
		"name":      d.Name,
	}
	if len(d.Cuisines) > 0 {
		m["cuisines"] = d.Cuisines
	}
	if len(d.CuisineIDs) > 0 {
		ids := make([]float64, len(d.CuisineIDs))
		for i, id := range d.CuisineIDs {
			ids[i] = float64(id)
		}
		m["cuisine_ids"] = ids
	}
	if d.Category != "" {
		m["category"] = d.Category
	}
	if d.Class != "" {
		m["class"] = d.Class
	}
	if d.Difficulty > 0 {
		m["difficulty"] = float64(d.Difficulty)
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}

// CuisineDocument builds the document for a cuisine.
func CuisineDocument(c *domain.Cuisine) *Document {
	return &Document{
		Type:       DocTypeCuisine,
		EntityID:   c.ID,
		Name:       c.Name,
		CuisineIDs: []int64{c.ID},
	}
}

// CookDocument builds the document for a cook. cuisineNames resolves
// qualification ids to names; unknown ids are skipped.
func CookDocument(c *domain.Cook, cuisineNames map[int64]string) *Document {
	doc := &Document{
		Type:       DocTypeCook,
		EntityID:   c.ID,
		Name:       c.FullName(),
		CuisineIDs: append([]int64(nil), c.CuisineIDs...),
		Class:      string(c.Class),
	}
	for _, id := range c.CuisineIDs {
		if name, ok := cuisineNames[id]; ok {
			doc.Cuisines = append(doc.Cuisines, name)
		}
	}
	return doc
}

// RecipeDocument builds the document for a recipe.
func RecipeDocument(r *domain.Recipe, cuisineName string) *Document {
	doc := &Document{
		Type:        DocTypeRecipe,
		EntityID:    r.ID,
		Name:        r.Name,
		CuisineIDs:  []int64{r.CuisineID},
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		Description: r.Description,
	}
	if cuisineName != "" {
		doc.Cuisines = []string{cuisineName}
	}
	return doc
}
