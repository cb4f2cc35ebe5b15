package sse

import (
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
)

// RunStarted announces a recorded run.
func (m *Manager) RunStarted(run *domain.GenerationRun) {
	m.Emit(NewRunStartedEvent(snapshot(run)))
}

// RunFinished announces a run's outcome.
func (m *Manager) RunFinished(run *domain.GenerationRun) {
	m.Emit(NewRunFinishedEvent(snapshot(run)))
}

// Observer returns a schedule.Observer that streams a run's episode progress.
func (m *Manager) Observer(runID string) schedule.Observer {
	return progressObserver{m: m, runID: runID}
}

// snapshot copies the run so later updates do not race with delivery.
func snapshot(run *domain.GenerationRun) *domain.GenerationRun {
	c := *run
	return &c
}

type progressObserver struct {
	m     *Manager
	runID string
}

func (o progressObserver) AttemptStarted(_, _, _ int) {}

func (o progressObserver) DeadEnd(year, ordinal int, stage schedule.Stage) {
	o.m.Emit(NewDeadEndEvent(o.runID, year, ordinal, stage.String()))
}

func (o progressObserver) Restored(_, _ int) {}

func (o progressObserver) Committed(ep *domain.Episode, attempts int) {
	o.m.Emit(NewEpisodeCommittedEvent(o.runID, ep, attempts))
}
