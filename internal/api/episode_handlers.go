package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

func (s *Server) registerEpisodeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEpisodes",
		Method:      http.MethodGet,
		Path:        "/api/v1/episodes",
		Summary:     "List episodes",
		Description: "Returns a page of episodes in ID order",
		Tags:        []string{"Episodes"},
	}, s.handleListEpisodes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEpisode",
		Method:      http.MethodGet,
		Path:        "/api/v1/episodes/{id}",
		Summary:     "Get episode",
		Description: "Returns the featured cuisines, recipes, cooks and grades of an episode, its winner and its judges",
		Tags:        []string{"Episodes"},
	}, s.handleGetEpisode)
}

// === DTOs ===

type ListEpisodesInput struct {
	Cursor string `query:"cursor" doc:"Pagination cursor"`
	Limit  int    `query:"limit" minimum:"0" maximum:"500" doc:"Items per page (default 50)"`
}

// EpisodeSummaryResponse is an episode in list responses.
type EpisodeSummaryResponse struct {
	ID      int64 `json:"id" doc:"Episode ID, sequential across years"`
	Year    int   `json:"year" doc:"Year filmed"`
	Ordinal int   `json:"ordinal" doc:"Episode number within the year"`
}

type ListEpisodesResponse struct {
	Episodes   []EpisodeSummaryResponse `json:"episodes" doc:"Episodes in ID order"`
	NextCursor string                   `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool                     `json:"has_more" doc:"Whether more pages exist"`
	Total      int                      `json:"total" doc:"Total number of episodes"`
}

type ListEpisodesOutput struct {
	Body ListEpisodesResponse
}

// FeaturedItemResponse is one cooking slot of an episode.
type FeaturedItemResponse struct {
	CuisineID    int64   `json:"cuisine_id" doc:"Cuisine ID"`
	CuisineName  string  `json:"cuisine_name" doc:"Cuisine name"`
	RecipeID     int64   `json:"recipe_id" doc:"Recipe ID"`
	RecipeName   string  `json:"recipe_name" doc:"Recipe name"`
	CookID       int64   `json:"cook_id" doc:"Cook ID"`
	CookName     string  `json:"cook_name" doc:"Cook name"`
	Grades       []int   `json:"grades" doc:"Grade from each judge, by panel position"`
	AverageGrade float64 `json:"average_grade" doc:"Mean of the three grades"`
	Winner       bool    `json:"winner" doc:"Whether this slot won the episode"`
}

// JudgeResponse is a judge seat of an episode.
type JudgeResponse struct {
	CookID   int64  `json:"cook_id" doc:"Cook ID"`
	Name     string `json:"name" doc:"Judge name"`
	Position int    `json:"position" doc:"Panel position, 1-based"`
}

// EpisodeResponse is the full view of an episode.
type EpisodeResponse struct {
	ID       int64                  `json:"id" doc:"Episode ID"`
	Year     int                    `json:"year" doc:"Year filmed"`
	Ordinal  int                    `json:"ordinal" doc:"Episode number within the year"`
	Featured []FeaturedItemResponse `json:"featured" doc:"Cooking slots in order"`
	Judges   []JudgeResponse        `json:"judges" doc:"Judges by position"`
}

type EpisodeOutput struct {
	Body EpisodeResponse
}

type EpisodeIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Episode ID"`
}

// === Handlers ===

func (s *Server) handleListEpisodes(ctx context.Context, input *ListEpisodesInput) (*ListEpisodesOutput, error) {
	page, err := s.services.Episode.ListEpisodes(ctx, store.PaginationParams{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	})
	if err != nil {
		return nil, err
	}

	resp := ListEpisodesResponse{
		Episodes:   make([]EpisodeSummaryResponse, len(page.Items)),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
		Total:      page.Total,
	}
	for i, e := range page.Items {
		resp.Episodes[i] = EpisodeSummaryResponse(e)
	}
	return &ListEpisodesOutput{Body: resp}, nil
}

func (s *Server) handleGetEpisode(ctx context.Context, input *EpisodeIDInput) (*EpisodeOutput, error) {
	detail, err := s.services.Episode.GetEpisode(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EpisodeOutput{Body: mapEpisodeDetail(detail)}, nil
}

func mapEpisodeDetail(d *domain.EpisodeDetail) EpisodeResponse {
	resp := EpisodeResponse{
		ID:       d.ID,
		Year:     d.Year,
		Ordinal:  d.Ordinal,
		Featured: make([]FeaturedItemResponse, len(d.Featured)),
		Judges:   make([]JudgeResponse, len(d.Judges)),
	}
	for i, f := range d.Featured {
		resp.Featured[i] = FeaturedItemResponse{
			CuisineID:    f.CuisineID,
			CuisineName:  f.CuisineName,
			RecipeID:     f.RecipeID,
			RecipeName:   f.RecipeName,
			CookID:       f.CookID,
			CookName:     f.CookName,
			Grades:       f.Grades[:],
			AverageGrade: f.AverageGrade,
			Winner:       f.Winner,
		}
	}
	for i, j := range d.Judges {
		resp.Judges[i] = JudgeResponse(j)
	}
	return resp
}
