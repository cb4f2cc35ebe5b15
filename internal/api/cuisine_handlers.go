package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerCuisineRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCuisines",
		Method:      http.MethodGet,
		Path:        "/api/v1/cuisines",
		Summary:     "List cuisines",
		Description: "Returns every cuisine ordered by ID",
		Tags:        []string{"Cuisines"},
	}, s.handleListCuisines)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCuisine",
		Method:      http.MethodGet,
		Path:        "/api/v1/cuisines/{id}",
		Summary:     "Get cuisine",
		Description: "Returns a cuisine by ID",
		Tags:        []string{"Cuisines"},
	}, s.handleGetCuisine)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCuisine",
		Method:        http.MethodPost,
		Path:          "/api/v1/cuisines",
		Summary:       "Create cuisine",
		Description:   "Creates a cuisine. Names are unique ignoring case and accents",
		Tags:          []string{"Cuisines"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
	}, s.handleCreateCuisine)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameCuisine",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cuisines/{id}",
		Summary:     "Rename cuisine",
		Description: "Renames a cuisine and reindexes the cooks and recipes that mention it",
		Tags:        []string{"Cuisines"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleRenameCuisine)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCuisine",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cuisines/{id}",
		Summary:     "Delete cuisine",
		Description: "Deletes a cuisine. Fails while recipes or episodes reference it",
		Tags:        []string{"Cuisines"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleDeleteCuisine)
}

// === DTOs ===

// CuisineResponse is a cuisine in API responses.
type CuisineResponse struct {
	ID   int64  `json:"id" doc:"Cuisine ID"`
	Name string `json:"name" doc:"Cuisine name"`
}

type ListCuisinesOutput struct {
	Body struct {
		Cuisines []CuisineResponse `json:"cuisines" doc:"Cuisines ordered by ID"`
	}
}

type CuisineOutput struct {
	Body CuisineResponse
}

type CuisineIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Cuisine ID"`
}

type CuisineBody struct {
	Name string `json:"name" minLength:"1" maxLength:"100" doc:"Cuisine name"`
}

type CreateCuisineInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     CuisineBody
}

type RenameCuisineInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Cuisine ID"`
	Body     CuisineBody
}

type DeleteCuisineInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Cuisine ID"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListCuisines(ctx context.Context, _ *struct{}) (*ListCuisinesOutput, error) {
	cuisines, err := s.services.Catalog.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListCuisinesOutput{}
	out.Body.Cuisines = make([]CuisineResponse, len(cuisines))
	for i := range cuisines {
		out.Body.Cuisines[i] = mapCuisineResponse(&cuisines[i])
	}
	return out, nil
}

func (s *Server) handleGetCuisine(ctx context.Context, input *CuisineIDInput) (*CuisineOutput, error) {
	c, err := s.services.Catalog.GetCuisine(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CuisineOutput{Body: mapCuisineResponse(c)}, nil
}

func (s *Server) handleCreateCuisine(ctx context.Context, input *CreateCuisineInput) (*CuisineOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	c, err := s.services.Catalog.CreateCuisine(ctx, service.CuisineRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &CuisineOutput{Body: mapCuisineResponse(c)}, nil
}

func (s *Server) handleRenameCuisine(ctx context.Context, input *RenameCuisineInput) (*CuisineOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	c, err := s.services.Catalog.RenameCuisine(ctx, input.ID, service.CuisineRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &CuisineOutput{Body: mapCuisineResponse(c)}, nil
}

func (s *Server) handleDeleteCuisine(ctx context.Context, input *DeleteCuisineInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteCuisine(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Cuisine deleted"}}, nil
}

func mapCuisineResponse(c *domain.Cuisine) CuisineResponse {
	return CuisineResponse{ID: c.ID, Name: c.Name}
}
