// Package store defines the persistence interface for the competition database.
package store

import (
	"context"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Cuisines
	CreateCuisine(ctx context.Context, c *domain.Cuisine) error
	GetCuisine(ctx context.Context, id int64) (*domain.Cuisine, error)
	ListCuisines(ctx context.Context) ([]domain.Cuisine, error)
	RenameCuisine(ctx context.Context, id int64, name string) error
	DeleteCuisine(ctx context.Context, id int64) error

	// Cooks
	CreateCook(ctx context.Context, c *domain.Cook) error
	GetCook(ctx context.Context, id int64) (*domain.Cook, error)
	ListCooks(ctx context.Context) ([]domain.Cook, error)
	UpdateCook(ctx context.Context, c *domain.Cook) error
	GetCookStats(ctx context.Context, id int64) (*domain.CookStats, error)
	DeleteCook(ctx context.Context, id int64) error

	// Recipes
	CreateRecipe(ctx context.Context, r *domain.Recipe) error
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	UpdateRecipe(ctx context.Context, r *domain.Recipe) error
	CountRecipeAppearances(ctx context.Context, id int64) (int, error)
	DeleteRecipe(ctx context.Context, id int64) error

	// Ingredients
	CreateIngredient(ctx context.Context, in *domain.Ingredient) error
	GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, in *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error

	// Tools
	CreateTool(ctx context.Context, t *domain.Tool) error
	GetTool(ctx context.Context, id int64) (*domain.Tool, error)
	ListTools(ctx context.Context) ([]domain.Tool, error)
	RenameTool(ctx context.Context, id int64, name string) error
	DeleteTool(ctx context.Context, id int64) error

	// Episodes
	PersistEpisode(ctx context.Context, ep *domain.Episode) error
	GetEpisode(ctx context.Context, id int64) (*domain.Episode, error)
	GetEpisodeDetail(ctx context.Context, id int64) (*domain.EpisodeDetail, error)
	ListEpisodes(ctx context.Context, params PaginationParams) (*PaginatedResult[domain.EpisodeSummary], error)
	MaxEpisodeID(ctx context.Context) (int64, error)
	MaxYearFilmed(ctx context.Context) (year int, ok bool, err error)

	// Generation runs
	CreateGenerationRun(ctx context.Context, run *domain.GenerationRun) error
	UpdateGenerationRun(ctx context.Context, run *domain.GenerationRun) error
	GetGenerationRun(ctx context.Context, id string) (*domain.GenerationRun, error)
	ListGenerationRuns(ctx context.Context) ([]*domain.GenerationRun, error)
}
