package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/id"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/validation"
)

// defaultMaxYears applies when the configuration leaves MaxYears unset.
const defaultMaxYears = 50

// GenerationService runs the episode generator over the stored catalogue and
// records every run. Only one run executes at a time.
type GenerationService struct {
	store     store.Store
	cfg       config.GenerationConfig
	metrics   *metrics.Metrics // Optional
	logger    *slog.Logger
	validator *validation.Validator

	mu sync.Mutex // Held for the duration of a run

	// rules overrides schedule.DefaultRules; zero means defaults.
	rules schedule.Rules

	events RunEvents // Optional
}

// RunEvents receives live progress of generation runs.
type RunEvents interface {
	RunStarted(run *domain.GenerationRun)
	RunFinished(run *domain.GenerationRun)
	Observer(runID string) schedule.Observer
}

// NewGenerationService creates a generation service. m may be nil.
func NewGenerationService(s store.Store, cfg config.GenerationConfig, m *metrics.Metrics, logger *slog.Logger) *GenerationService {
	return &GenerationService{
		store:     s,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		validator: validation.New(),
	}
}

// WithEvents publishes run progress to e.
func (s *GenerationService) WithEvents(e RunEvents) *GenerationService {
	s.events = e
	return s
}

// WithRules replaces the show rules for subsequent runs.
func (s *GenerationService) WithRules(r schedule.Rules) *GenerationService {
	s.rules = r
	return s
}

// GenerateRequest asks for every episode of [StartYear, EndYear].
type GenerateRequest struct {
	StartYear int    `json:"start_year" validate:"required"`
	EndYear   int    `json:"end_year" validate:"required"`
	Seed      *int64 `json:"seed,omitempty"` // Overrides the configured seed
}

// ValidateStartYear checks that start is a positive year that follows every
// filmed year and precedes the configured limit.
func (s *GenerationService) ValidateStartYear(ctx context.Context, start int) error {
	if start < 1 {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"start_year": "must be a positive year",
		})
	}
	maxYear, filmed, err := s.store.MaxYearFilmed(ctx)
	if err != nil {
		return fmt.Errorf("read last filmed year: %w", err)
	}
	if filmed && start <= maxYear {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"start_year": fmt.Sprintf("must be after %d, the last year already filmed", maxYear),
		})
	}
	if start >= s.cfg.YearLimit {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"start_year": fmt.Sprintf("must be before %d", s.cfg.YearLimit),
		})
	}
	return nil
}

// ValidateEndYear checks that end does not precede start and that the run
// covers at most the configured number of years.
func (s *GenerationService) ValidateEndYear(start, end int) error {
	if end < start {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"end_year": fmt.Sprintf("must be %d or later", start),
		})
	}
	// Unsigned so that extreme years cannot overflow the span.
	maxYears := s.maxYears()
	if uint(end)-uint(start) >= uint(maxYears) {
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"end_year": fmt.Sprintf("must be at most %d (a run covers up to %d years)", start+maxYears-1, maxYears),
		})
	}
	return nil
}

func (s *GenerationService) maxYears() int {
	if s.cfg.MaxYears > 0 {
		return s.cfg.MaxYears
	}
	return defaultMaxYears
}

// ValidateYears applies both year rules.
func (s *GenerationService) ValidateYears(ctx context.Context, start, end int) error {
	if err := s.ValidateStartYear(ctx, start); err != nil {
		return err
	}
	return s.ValidateEndYear(start, end)
}

// Generate validates the request and runs the generator to completion. The
// returned run is non-nil whenever a run record was created, including when
// the run failed part way.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*domain.GenerationRun, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !s.mu.TryLock() {
		return nil, domainerrors.Conflict("a generation run is already in progress")
	}
	defer s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RunInProgress.Set(1)
		defer s.metrics.RunInProgress.Set(0)
	}

	// Checked under the lock so a concurrent run cannot invalidate the years.
	if err := s.ValidateYears(ctx, req.StartYear, req.EndYear); err != nil {
		return nil, err
	}

	ref, err := s.loadReference(ctx)
	if err != nil {
		return nil, err
	}

	seed := s.cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng, seed := schedule.NewRand(seed)

	runID, err := id.NewRunID()
	if err != nil {
		return nil, err
	}
	logger := s.logger.With("run_id", runID)

	opts := schedule.Options{
		Rules:       s.rules,
		Rand:        rng,
		MaxAttempts: s.cfg.MaxAttempts,
		Logger:      logger,
	}
	var observers []schedule.Observer
	if s.metrics != nil {
		observers = append(observers, s.metrics.Observer())
	}
	if s.events != nil {
		observers = append(observers, s.events.Observer(runID))
	}
	opts.Observer = schedule.Observers(observers...)

	gen, err := schedule.NewGenerator(ref, s.store, s.store, opts)
	if err != nil {
		if errors.Is(err, schedule.ErrEmptyReference) {
			return nil, domainerrors.Validation("the catalogue needs cuisines, recipes and qualified cooks before episodes can be generated")
		}
		return nil, err
	}
	plan := gen.NewPlan(req.StartYear, req.EndYear)

	run := &domain.GenerationRun{
		ID:         runID,
		Seed:       seed,
		StartYear:  plan.StartYear,
		EndYear:    plan.EndYear,
		LegacyYear: plan.LegacyYear,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now(),
	}
	if err := s.store.CreateGenerationRun(ctx, run); err != nil {
		return nil, fmt.Errorf("record generation run: %w", err)
	}
	if s.events != nil {
		s.events.RunStarted(run)
	}

	summary, runErr := gen.Run(ctx, plan)
	if summary != nil {
		run.EpisodesGenerated = summary.Episodes
		run.DeadEnds = summary.DeadEnds
		run.FirstEpisodeID = summary.FirstEpisodeID
		run.LastEpisodeID = summary.LastEpisodeID
	}
	run.Finish(runErr)

	// Record the outcome even when the request context was cancelled.
	if err := s.store.UpdateGenerationRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Error("failed to record generation run outcome", "error", err)
	}
	if s.metrics != nil {
		s.metrics.RecordRun(run.Status, run.CompletedAt.Sub(run.StartedAt))
	}
	if s.events != nil {
		s.events.RunFinished(run)
	}

	if runErr != nil {
		logger.Error("generation run failed",
			"episodes", run.EpisodesGenerated,
			"error", runErr,
		)
		return run, runError(runErr)
	}

	logger.Info("generation run completed",
		"seed", run.Seed,
		"legacy_year", run.LegacyYear,
		"episodes", run.EpisodesGenerated,
		"dead_ends", run.DeadEnds,
	)
	return run, nil
}

// ListRuns returns every recorded run, newest first.
func (s *GenerationService) ListRuns(ctx context.Context) ([]*domain.GenerationRun, error) {
	runs, err := s.store.ListGenerationRuns(ctx)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []*domain.GenerationRun{}
	}
	return runs, nil
}

// GetRun returns a single run.
func (s *GenerationService) GetRun(ctx context.Context, runID string) (*domain.GenerationRun, error) {
	run, err := s.store.GetGenerationRun(ctx, runID)
	if err != nil {
		return nil, storeError(err, "generation run")
	}
	return run, nil
}

// loadReference reads the catalogue the generator draws from.
func (s *GenerationService) loadReference(ctx context.Context) (*schedule.Reference, error) {
	cuisines, err := s.store.ListCuisines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cuisines: %w", err)
	}
	cooks, err := s.store.ListCooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cooks: %w", err)
	}
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return schedule.NewReference(cuisines, cooks, recipes), nil
}

func runError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrAttemptsExhausted):
		return domainerrors.Conflict("the catalogue could not fill an episode within the attempt limit").WithCause(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "generation run failed")
	}
}
