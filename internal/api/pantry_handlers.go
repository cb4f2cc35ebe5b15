package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns every ingredient ordered by ID",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get ingredient",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createIngredient",
		Method:        http.MethodPost,
		Path:          "/api/v1/ingredients",
		Summary:       "Create ingredient",
		Description:   "Creates an ingredient. Names are unique ignoring case and accents",
		Tags:          []string{"Ingredients"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
	}, s.handleCreateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateIngredient",
		Method:      http.MethodPatch,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Update ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleUpdateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteIngredient",
		Method:      http.MethodDelete,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Delete ingredient",
		Description: "Deletes an ingredient. Fails while a recipe uses it",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleDeleteIngredient)
}

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools",
		Summary:     "List tools",
		Description: "Returns every tool ordered by ID",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTool",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Get tool",
		Tags:        []string{"Tools"},
	}, s.handleGetTool)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTool",
		Method:        http.MethodPost,
		Path:          "/api/v1/tools",
		Summary:       "Create tool",
		Tags:          []string{"Tools"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
	}, s.handleCreateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameTool",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Rename tool",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleRenameTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTool",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Delete tool",
		Description: "Deletes a tool. Fails while a recipe calls for it",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleDeleteTool)
}

// === DTOs ===

// IngredientResponse is an ingredient in API responses.
type IngredientResponse struct {
	ID       int64  `json:"id" doc:"Ingredient ID"`
	Name     string `json:"name" doc:"Ingredient name"`
	Calories int    `json:"calories" doc:"kcal per 100 g"`
}

// ToolResponse is a tool in API responses.
type ToolResponse struct {
	ID   int64  `json:"id" doc:"Tool ID"`
	Name string `json:"name" doc:"Tool name"`
}

type ListIngredientsOutput struct {
	Body struct {
		Ingredients []IngredientResponse `json:"ingredients" doc:"Ingredients ordered by ID"`
	}
}

type IngredientOutput struct {
	Body IngredientResponse
}

type IngredientIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Ingredient ID"`
}

type CreateIngredientInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     struct {
		Name     string `json:"name" minLength:"1" maxLength:"100" doc:"Ingredient name"`
		Calories int    `json:"calories,omitempty" minimum:"0" maximum:"1000" doc:"kcal per 100 g"`
	}
}

type UpdateIngredientInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Ingredient ID"`
	Body     struct {
		Name     *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"Ingredient name"`
		Calories *int    `json:"calories,omitempty" minimum:"0" maximum:"1000" doc:"kcal per 100 g"`
	}
}

type DeleteIngredientInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Ingredient ID"`
}

type ListToolsOutput struct {
	Body struct {
		Tools []ToolResponse `json:"tools" doc:"Tools ordered by ID"`
	}
}

type ToolOutput struct {
	Body ToolResponse
}

type ToolIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Tool ID"`
}

type ToolBody struct {
	Name string `json:"name" minLength:"1" maxLength:"100" doc:"Tool name"`
}

type CreateToolInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     ToolBody
}

type RenameToolInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Tool ID"`
	Body     ToolBody
}

type DeleteToolInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Tool ID"`
}

// === Ingredient handlers ===

func (s *Server) handleListIngredients(ctx context.Context, _ *struct{}) (*ListIngredientsOutput, error) {
	ingredients, err := s.services.Catalog.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListIngredientsOutput{}
	out.Body.Ingredients = make([]IngredientResponse, len(ingredients))
	for i := range ingredients {
		out.Body.Ingredients[i] = IngredientResponse(ingredients[i])
	}
	return out, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *IngredientIDInput) (*IngredientOutput, error) {
	in, err := s.services.Catalog.GetIngredient(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: IngredientResponse(*in)}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	in, err := s.services.Catalog.CreateIngredient(ctx, service.IngredientRequest{
		Name:     input.Body.Name,
		Calories: input.Body.Calories,
	})
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: IngredientResponse(*in)}, nil
}

func (s *Server) handleUpdateIngredient(ctx context.Context, input *UpdateIngredientInput) (*IngredientOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	in, err := s.services.Catalog.UpdateIngredient(ctx, input.ID, service.UpdateIngredientRequest{
		Name:     input.Body.Name,
		Calories: input.Body.Calories,
	})
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: IngredientResponse(*in)}, nil
}

func (s *Server) handleDeleteIngredient(ctx context.Context, input *DeleteIngredientInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteIngredient(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Ingredient deleted"}}, nil
}

// === Tool handlers ===

func (s *Server) handleListTools(ctx context.Context, _ *struct{}) (*ListToolsOutput, error) {
	tools, err := s.services.Catalog.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListToolsOutput{}
	out.Body.Tools = make([]ToolResponse, len(tools))
	for i := range tools {
		out.Body.Tools[i] = mapToolResponse(&tools[i])
	}
	return out, nil
}

func (s *Server) handleGetTool(ctx context.Context, input *ToolIDInput) (*ToolOutput, error) {
	t, err := s.services.Catalog.GetTool(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: mapToolResponse(t)}, nil
}

func (s *Server) handleCreateTool(ctx context.Context, input *CreateToolInput) (*ToolOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	t, err := s.services.Catalog.CreateTool(ctx, service.ToolRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: mapToolResponse(t)}, nil
}

func (s *Server) handleRenameTool(ctx context.Context, input *RenameToolInput) (*ToolOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	t, err := s.services.Catalog.RenameTool(ctx, input.ID, service.ToolRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: mapToolResponse(t)}, nil
}

func (s *Server) handleDeleteTool(ctx context.Context, input *DeleteToolInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteTool(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Tool deleted"}}, nil
}

func mapToolResponse(t *domain.Tool) ToolResponse {
	return ToolResponse{ID: t.ID, Name: t.Name}
}
