package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// ErrAttemptsExhausted is returned when MaxAttempts is set and every attempt
// at an episode dead-ended.
var ErrAttemptsExhausted = errors.New("episode attempts exhausted")

// Persister writes a finished episode durably. The tracker only advances once
// PersistEpisode returns nil.
type Persister interface {
	PersistEpisode(ctx context.Context, ep *domain.Episode) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, ep *domain.Episode) error

// PersistEpisode implements Persister.
func (f PersisterFunc) PersistEpisode(ctx context.Context, ep *domain.Episode) error {
	return f(ctx, ep)
}

// Observer is notified of controller progress. Methods are called synchronously.
type Observer interface {
	AttemptStarted(year, ordinal, attempt int)
	DeadEnd(year, ordinal int, stage Stage)
	Restored(year, ordinal int)
	Committed(ep *domain.Episode, attempts int)
}

type nopObserver struct{}

func (nopObserver) AttemptStarted(int, int, int)   {}
func (nopObserver) DeadEnd(int, int, Stage)        {}
func (nopObserver) Restored(int, int)              {}
func (nopObserver) Committed(*domain.Episode, int) {}

// Observers fans every notification out to each non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var out multiObserver
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) AttemptStarted(year, ordinal, attempt int) {
	for _, o := range m {
		o.AttemptStarted(year, ordinal, attempt)
	}
}

func (m multiObserver) DeadEnd(year, ordinal int, stage Stage) {
	for _, o := range m {
		o.DeadEnd(year, ordinal, stage)
	}
}

func (m multiObserver) Restored(year, ordinal int) {
	for _, o := range m {
		o.Restored(year, ordinal)
	}
}

func (m multiObserver) Committed(ep *domain.Episode, attempts int) {
	for _, o := range m {
		o.Committed(ep, attempts)
	}
}

type controllerState int

const (
	stateAttempting controllerState = iota
	stateDone
)

// Controller retries an episode from scratch until the assigner succeeds,
// rolling the tracker back to the pre-attempt snapshot after each dead end.
type Controller struct {
	assigner    *Assigner
	tracker     *Tracker
	persister   Persister
	observer    Observer
	maxAttempts int // 0 means unbounded
}

// NewController wires a controller. A nil observer is allowed.
func NewController(assigner *Assigner, tracker *Tracker, persister Persister, observer Observer, maxAttempts int) *Controller {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Controller{
		assigner:    assigner,
		tracker:     tracker,
		persister:   persister,
		observer:    observer,
		maxAttempts: maxAttempts,
	}
}

// Generate produces, persists and commits the episode numbered id. On a
// persistence error the tracker is rolled back and the error returned.
func (c *Controller) Generate(ctx context.Context, id int64, year, ordinal int, legacy bool) (*domain.Episode, error) {
	var (
		ep       *domain.Episode
		attempts int
		state    = stateAttempting
	)
	for state == stateAttempting {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.maxAttempts > 0 && attempts >= c.maxAttempts {
			return nil, fmt.Errorf("episode %d of %d: %w after %d attempts", ordinal, year, ErrAttemptsExhausted, attempts)
		}
		attempts++
		c.observer.AttemptStarted(year, ordinal, attempts)

		snapshot := c.tracker.Snapshot()
		res := c.assigner.Run(year, ordinal, legacy)
		if res.DeadEnd {
			c.observer.DeadEnd(year, ordinal, res.Stage)
			c.tracker.Restore(snapshot)
			c.observer.Restored(year, ordinal)
			continue
		}

		ep = res.Episode
		ep.ID = id
		if err := c.persister.PersistEpisode(ctx, ep); err != nil {
			c.tracker.Restore(snapshot)
			c.observer.Restored(year, ordinal)
			return nil, fmt.Errorf("persist episode %d: %w", id, err)
		}
		state = stateDone
	}
	c.observer.Committed(ep, attempts)
	return ep, nil
}
