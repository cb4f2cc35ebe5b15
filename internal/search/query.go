package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search.
type Params struct {
	Query     string
	Type      DocType // Empty searches every type
	CuisineID int64   // Restrict to documents tied to a cuisine; 0 disables
	Limit     int
	Offset    int
	Highlight bool
}

// DefaultLimit is used when Params.Limit is not positive.
const DefaultLimit = 20

// MaxLimit caps Params.Limit.
const MaxLimit = 100

// Result holds one page of hits.
type Result struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []Hit        `json:"hits"`
	Types  []FacetCount `json:"types,omitempty"` // Hit counts per document type
}

// Hit is a single search result.
type Hit struct {
	Type       DocType           `json:"type"`
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Score      float64           `json:"score"`
	Cuisines   []string          `json:"cuisines,omitempty"`
	Class      string            `json:"class,omitempty"`
	Category   string            `json:"category,omitempty"`
	Difficulty int               `json:"difficulty,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// FacetCount is a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a query.
func (s *Index) Search(ctx context.Context, p Params) (*Result, error) {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	p.Limit = min(p.Limit, MaxLimit)
	p.Offset = max(p.Offset, 0)

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(p), p.Limit, p.Offset, false)
	if p.Query == "" {
		req.SortBy([]string{"type", "name"})
	} else {
		req.SortBy([]string{"-_score", "name"})
	}
	req.AddFacet("type", bleve.NewFacetRequest("type", 3))
	if p.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("name")
		req.Highlight.AddField("cuisines")
	}
	req.Fields = []string{"type", "entity_id", "name", "cuisines", "class", "category", "difficulty"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &Result{
		Query:  p.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}

	for _, h := range res.Hits {
		hit := Hit{Score: h.Score}
		if t, ok := h.Fields["type"].(string); ok {
			hit.Type = DocType(t)
		}
		if id, ok := h.Fields["entity_id"].(float64); ok {
			hit.ID = int64(id)
		}
		if n, ok := h.Fields["name"].(string); ok {
			hit.Name = n
		}
		hit.Cuisines = stringsField(h.Fields["cuisines"])
		if c, ok := h.Fields["class"].(string); ok {
			hit.Class = c
		}
		if c, ok := h.Fields["category"].(string); ok {
			hit.Category = c
		}
		if d, ok := h.Fields["difficulty"].(float64); ok {
			hit.Difficulty = int(d)
		}
		if len(h.Fragments) > 0 {
			hit.Highlights = make(map[string]string, len(h.Fragments))
			for field, fragments := range h.Fragments {
				if len(fragments) > 0 {
					hit.Highlights[field] = fragments[0]
				}
			}
		}
		out.Hits = append(out.Hits, hit)
	}

	if f, ok := res.Facets["type"]; ok && f.Terms != nil {
		for _, term := range f.Terms.Terms() {
			out.Types = append(out.Types, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return out, nil
}

// buildQuery combines the text query with the type and cuisine filters.
func buildQuery(p Params) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(p.Query); q != "" {
		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		cuisineMatch := bleve.NewMatchQuery(q)
		cuisineMatch.SetField("cuisines")
		cuisineMatch.SetBoost(1.5)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")

		// Typo tolerance on names
		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("name")
		fuzzy.SetBoost(0.8)

		text := []query.Query{nameMatch, cuisineMatch, descMatch, fuzzy}

		// Prefix for autocomplete, minimum 2 chars
		if len(q) >= 2 && !strings.ContainsAny(q, " \t") {
			prefix := bleve.NewPrefixQuery(strings.ToLower(q))
			prefix.SetField("name")
			prefix.SetBoost(0.5)
			text = append(text, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(text...))
	}

	if p.Type != "" {
		tq := bleve.NewTermQuery(string(p.Type))
		tq.SetField("type")
		queries = append(queries, tq)
	}

	if p.CuisineID > 0 {
		v := float64(p.CuisineID)
		inclusive := true
		rq := bleve.NewNumericRangeInclusiveQuery(&v, &v, &inclusive, &inclusive)
		rq.SetField("cuisine_ids")
		queries = append(queries, rq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// stringsField reads a stored text field that may hold one or many values.
func stringsField(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
