package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerGenerationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "generateEpisodes",
		Method:        http.MethodPost,
		Path:          "/api/v1/generations",
		Summary:       "Generate episodes",
		Description:   "Generates every episode of the requested years and records the run. Runs synchronously; only one run at a time",
		Tags:          []string{"Generations"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
		Middlewares:   huma.Middlewares{s.rateLimited()},
	}, s.handleGenerate)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenerations",
		Method:      http.MethodGet,
		Path:        "/api/v1/generations",
		Summary:     "List generation runs",
		Description: "Returns every recorded run, newest first",
		Tags:        []string{"Generations"},
	}, s.handleListGenerations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGeneration",
		Method:      http.MethodGet,
		Path:        "/api/v1/generations/{id}",
		Summary:     "Get generation run",
		Description: "Returns a recorded run",
		Tags:        []string{"Generations"},
	}, s.handleGetGeneration)
}

// === DTOs ===

type GenerateBody struct {
	StartYear int    `json:"start_year" doc:"First year to generate; must follow every filmed year"`
	EndYear   int    `json:"end_year" doc:"Last year to generate, inclusive"`
	Seed      *int64 `json:"seed,omitempty" doc:"Random seed for a reproducible run"`
}

type GenerateInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     GenerateBody
}

// GenerationRunResponse describes a generation run.
type GenerationRunResponse struct {
	ID                string     `json:"id" doc:"Run ID"`
	Seed              int64      `json:"seed" doc:"Seed the run used"`
	StartYear         int        `json:"start_year" doc:"First generated year"`
	EndYear           int        `json:"end_year" doc:"Last generated year"`
	LegacyYear        int        `json:"legacy_year" doc:"Year whose judges came from the original cast"`
	Status            string     `json:"status" doc:"running, completed or failed"`
	EpisodesGenerated int        `json:"episodes_generated" doc:"Episodes committed"`
	DeadEnds          int        `json:"dead_ends" doc:"Attempts abandoned and retried"`
	FirstEpisodeID    int64      `json:"first_episode_id,omitempty" doc:"ID of the first committed episode"`
	LastEpisodeID     int64      `json:"last_episode_id,omitempty" doc:"ID of the last committed episode"`
	Error             string     `json:"error,omitempty" doc:"Failure reason"`
	StartedAt         time.Time  `json:"started_at" doc:"Start time"`
	CompletedAt       *time.Time `json:"completed_at,omitempty" doc:"Completion time"`
}

type GenerationRunOutput struct {
	Body GenerationRunResponse
}

type ListGenerationsOutput struct {
	Body struct {
		Runs []GenerationRunResponse `json:"runs" doc:"Runs, newest first"`
	}
}

type GenerationIDInput struct {
	ID string `path:"id" doc:"Run ID"`
}

// === Handlers ===

func (s *Server) handleGenerate(ctx context.Context, input *GenerateInput) (*GenerationRunOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	run, err := s.services.Generation.Generate(ctx, service.GenerateRequest{
		StartYear: input.Body.StartYear,
		EndYear:   input.Body.EndYear,
		Seed:      input.Body.Seed,
	})
	if err != nil {
		if run != nil {
			// Episodes committed before the failure stay; point the caller at the run.
			s.logger.Warn("Generation run failed",
				"run_id", run.ID,
				"episodes", run.EpisodesGenerated,
				"error", err,
			)
			return nil, huma.ErrorWithHeaders(err, http.Header{
				"Location": {"/api/v1/generations/" + run.ID},
			})
		}
		return nil, err
	}

	return &GenerationRunOutput{Body: mapGenerationRun(run)}, nil
}

func (s *Server) handleListGenerations(ctx context.Context, _ *struct{}) (*ListGenerationsOutput, error) {
	runs, err := s.services.Generation.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListGenerationsOutput{}
	out.Body.Runs = make([]GenerationRunResponse, len(runs))
	for i, r := range runs {
		out.Body.Runs[i] = mapGenerationRun(r)
	}
	return out, nil
}

func (s *Server) handleGetGeneration(ctx context.Context, input *GenerationIDInput) (*GenerationRunOutput, error) {
	run, err := s.services.Generation.GetRun(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GenerationRunOutput{Body: mapGenerationRun(run)}, nil
}

func mapGenerationRun(r *domain.GenerationRun) GenerationRunResponse {
	return GenerationRunResponse{
		ID:                r.ID,
		Seed:              r.Seed,
		StartYear:         r.StartYear,
		EndYear:           r.EndYear,
		LegacyYear:        r.LegacyYear,
		Status:            string(r.Status),
		EpisodesGenerated: r.EpisodesGenerated,
		DeadEnds:          r.DeadEnds,
		FirstEpisodeID:    r.FirstEpisodeID,
		LastEpisodeID:     r.LastEpisodeID,
		Error:             r.Error,
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
	}
}
