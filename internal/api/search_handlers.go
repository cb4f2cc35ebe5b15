package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search catalogue",
		Description: "Full-text search over cuisines, cooks and recipes with typo tolerance and type facets",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

type SearchInput struct {
	Query     string `query:"q" maxLength:"200" doc:"Search query; empty lists everything"`
	Type      string `query:"type" enum:"cuisine,cook,recipe" doc:"Restrict to one document type"`
	CuisineID int64  `query:"cuisine_id" minimum:"0" doc:"Restrict to documents tied to a cuisine"`
	Limit     int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset    int    `query:"offset" minimum:"0" doc:"Results to skip"`
}

type SearchOutput struct {
	Body *search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	res, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:     input.Query,
		Type:      input.Type,
		CuisineID: input.CuisineID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: res}, nil
}
