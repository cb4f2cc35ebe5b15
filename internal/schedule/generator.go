package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// History exposes what has already been filmed.
type History interface {
	MaxEpisodeID(ctx context.Context) (int64, error)
}

// Options configures a Generator.
type Options struct {
	Rules       Rules
	Rand        Rand
	MaxAttempts int      // Per episode; 0 retries forever
	Observer    Observer // Optional
	Logger      *slog.Logger
}

// Plan is the year range of a run and its legacy judge year.
type Plan struct {
	StartYear  int
	EndYear    int
	LegacyYear int
}

// Summary reports what a run produced.
type Summary struct {
	Plan
	Episodes       int
	FirstEpisodeID int64
	LastEpisodeID  int64
	DeadEnds       int
}

// Generator produces every episode of a year range, one at a time.
// A Generator holds one tracker for its whole life and is not reentrant.
type Generator struct {
	ref       *Reference
	tracker   *Tracker
	rules     Rules
	rng       Rand
	persister Persister
	history   History
	opts      Options
	logger    *slog.Logger
}

// NewGenerator creates a generator over ref.
func NewGenerator(ref *Reference, persister Persister, history History, opts Options) (*Generator, error) {
	if opts.Rules == (Rules{}) {
		opts.Rules = DefaultRules()
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand, _ = NewRand(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		ref:       ref,
		tracker:   NewTracker(ref, opts.Rules.Cap),
		rules:     opts.Rules,
		rng:       opts.Rand,
		persister: persister,
		history:   history,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Tracker exposes the generator's appearance counters.
func (g *Generator) Tracker() *Tracker {
	return g.tracker
}

// NewPlan picks the legacy year uniformly from [start, end].
func (g *Generator) NewPlan(start, end int) Plan {
	return Plan{
		StartYear:  start,
		EndYear:    end,
		LegacyYear: start + g.rng.Intn(end-start+1),
	}
}

// Run generates EpisodesPerYear episodes for every year of the plan. Episode
// numbers continue after the highest one already stored. On error the summary
// still describes the episodes committed so far.
func (g *Generator) Run(ctx context.Context, plan Plan) (*Summary, error) {
	if plan.EndYear < plan.StartYear {
		return nil, fmt.Errorf("end year %d before start year %d", plan.EndYear, plan.StartYear)
	}

	lastID, err := g.history.MaxEpisodeID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read last episode id: %w", err)
	}

	counter := &runObserver{next: g.opts.Observer, logger: g.logger}
	ctrl := NewController(
		NewAssigner(g.ref, g.tracker, g.rng, g.rules),
		g.tracker,
		g.persister,
		counter,
		g.opts.MaxAttempts,
	)

	summary := &Summary{Plan: plan}
	g.logger.Info("generation started",
		"start_year", plan.StartYear,
		"end_year", plan.EndYear,
		"legacy_year", plan.LegacyYear,
		"next_episode_id", lastID+1,
	)

	for year := plan.StartYear; year <= plan.EndYear; year++ {
		for ordinal := 1; ordinal <= g.rules.EpisodesPerYear; ordinal++ {
			id := lastID + 1
			ep, err := ctrl.Generate(ctx, id, year, ordinal, year == plan.LegacyYear)
			summary.DeadEnds = counter.deadEnds
			if err != nil {
				return summary, err
			}
			lastID = ep.ID
			if summary.FirstEpisodeID == 0 {
				summary.FirstEpisodeID = ep.ID
			}
			summary.LastEpisodeID = ep.ID
			summary.Episodes++
		}
	}

	g.logger.Info("generation finished",
		"episodes", summary.Episodes,
		"dead_ends", summary.DeadEnds,
		"first_episode_id", summary.FirstEpisodeID,
		"last_episode_id", summary.LastEpisodeID,
	)
	return summary, nil
}

// runObserver logs progress, tallies dead ends and forwards every event.
type runObserver struct {
	next     Observer
	logger   *slog.Logger
	deadEnds int
}

func (d *runObserver) AttemptStarted(year, ordinal, attempt int) {
	if d.next != nil {
		d.next.AttemptStarted(year, ordinal, attempt)
	}
}

func (d *runObserver) DeadEnd(year, ordinal int, stage Stage) {
	d.deadEnds++
	d.logger.Debug("episode dead end", "year", year, "ordinal", ordinal, "stage", stage.String())
	if d.next != nil {
		d.next.DeadEnd(year, ordinal, stage)
	}
}

func (d *runObserver) Restored(year, ordinal int) {
	if d.next != nil {
		d.next.Restored(year, ordinal)
	}
}

func (d *runObserver) Committed(ep *domain.Episode, attempts int) {
	d.logger.Info("episode committed",
		"episode_id", ep.ID,
		"year", ep.Year,
		"ordinal", ep.Ordinal,
		"attempts", attempts,
	)
	if d.next != nil {
		d.next.Committed(ep, attempts)
	}
}
