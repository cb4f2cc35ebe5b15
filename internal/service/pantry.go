package service

import (
	"context"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/normalize"
)

// Ingredients and tools are not searchable and never drawn by the
// generator, so writes here leave the index alone.

// IngredientRequest contains the fields of an ingredient.
type IngredientRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Calories int    `json:"calories" validate:"min=0,max=1000"`
}

// UpdateIngredientRequest changes some fields of an ingredient.
type UpdateIngredientRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Calories *int    `json:"calories,omitempty" validate:"omitempty,min=0,max=1000"`
}

// ToolRequest names a tool.
type ToolRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// --- Ingredients ---

// ListIngredients returns every ingredient ordered by ID.
func (s *CatalogService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	return ingredients, nil
}

// GetIngredient returns a single ingredient.
func (s *CatalogService) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	in, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return nil, storeError(err, "ingredient")
	}
	return in, nil
}

// CreateIngredient adds an ingredient. Names must be unique ignoring case
// and accents.
func (s *CatalogService) CreateIngredient(ctx context.Context, req IngredientRequest) (*domain.Ingredient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	in := &domain.Ingredient{Name: normalize.Name(req.Name), Calories: req.Calories}
	if err := s.store.CreateIngredient(ctx, in); err != nil {
		return nil, storeError(err, "ingredient")
	}

	s.logger.Info("ingredient created", "id", in.ID, "name", in.Name)
	return in, nil
}

// UpdateIngredient changes an ingredient's name or calories.
func (s *CatalogService) UpdateIngredient(ctx context.Context, id int64, req UpdateIngredientRequest) (*domain.Ingredient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	in, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return nil, storeError(err, "ingredient")
	}
	if req.Name != nil {
		in.Name = normalize.Name(*req.Name)
	}
	if req.Calories != nil {
		in.Calories = *req.Calories
	}

	if err := s.store.UpdateIngredient(ctx, in); err != nil {
		return nil, storeError(err, "ingredient")
	}

	s.logger.Info("ingredient updated", "id", in.ID, "name", in.Name)
	return in, nil
}

// DeleteIngredient removes an ingredient. It fails with CONFLICT while a
// recipe uses it.
func (s *CatalogService) DeleteIngredient(ctx context.Context, id int64) error {
	if err := s.store.DeleteIngredient(ctx, id); err != nil {
		return storeError(err, "ingredient")
	}

	s.logger.Info("ingredient deleted", "id", id)
	return nil
}

// --- Tools ---

// ListTools returns every tool ordered by ID.
func (s *CatalogService) ListTools(ctx context.Context) ([]domain.Tool, error) {
	tools, err := s.store.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []domain.Tool{}
	}
	return tools, nil
}

// GetTool returns a single tool.
func (s *CatalogService) GetTool(ctx context.Context, id int64) (*domain.Tool, error) {
	t, err := s.store.GetTool(ctx, id)
	if err != nil {
		return nil, storeError(err, "tool")
	}
	return t, nil
}

// CreateTool adds a tool.
func (s *CatalogService) CreateTool(ctx context.Context, req ToolRequest) (*domain.Tool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t := &domain.Tool{Name: normalize.Name(req.Name)}
	if err := s.store.CreateTool(ctx, t); err != nil {
		return nil, storeError(err, "tool")
	}

	s.logger.Info("tool created", "id", t.ID, "name", t.Name)
	return t, nil
}

// RenameTool changes a tool's name.
func (s *CatalogService) RenameTool(ctx context.Context, id int64, req ToolRequest) (*domain.Tool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	name := normalize.Name(req.Name)
	if err := s.store.RenameTool(ctx, id, name); err != nil {
		return nil, storeError(err, "tool")
	}

	s.logger.Info("tool renamed", "id", id, "name", name)
	return &domain.Tool{ID: id, Name: name}, nil
}

// DeleteTool removes a tool. It fails with CONFLICT while a recipe calls
// for it.
func (s *CatalogService) DeleteTool(ctx context.Context, id int64) error {
	if err := s.store.DeleteTool(ctx, id); err != nil {
		return storeError(err, "tool")
	}

	s.logger.Info("tool deleted", "id", id)
	return nil
}
