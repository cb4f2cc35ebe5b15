package domain

import "time"

// RunStatus is the lifecycle state of a generation run.
type RunStatus string

// Generation run states.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// GenerationRun records one invocation of the episode generator.
type GenerationRun struct {
	ID                string     `json:"id"`
	Seed              int64      `json:"seed"`
	StartYear         int        `json:"start_year"`
	EndYear           int        `json:"end_year"`
	LegacyYear        int        `json:"legacy_year"`
	Status            RunStatus  `json:"status"`
	EpisodesGenerated int        `json:"episodes_generated"`
	DeadEnds          int        `json:"dead_ends"`
	FirstEpisodeID    int64      `json:"first_episode_id,omitempty"`
	LastEpisodeID     int64      `json:"last_episode_id,omitempty"`
	Error             string     `json:"error,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Finish marks the run as completed or failed.
func (r *GenerationRun) Finish(err error) {
	now := time.Now()
	r.CompletedAt = &now
	if err != nil {
		r.Status = RunStatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunStatusCompleted
}
