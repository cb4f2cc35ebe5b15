// Package sse streams generation progress to clients as Server-Sent Events.
package sse

import (
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventRunStarted is sent once a run has been recorded.
	EventRunStarted EventType = "run.started"
	// EventRunFinished is sent when a run completes or fails.
	EventRunFinished EventType = "run.finished"

	// EventEpisodeCommitted is sent after an episode is persisted.
	EventEpisodeCommitted EventType = "episode.committed"
	// EventEpisodeDeadEnd is sent when an attempt runs out of candidates.
	EventEpisodeDeadEnd EventType = "episode.dead_end"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// RunID scopes the event to one run. Empty reaches every client.
	RunID string `json:"run_id,omitempty"`
}

// RunEventData is the data payload for run events.
type RunEventData struct {
	Run *domain.GenerationRun `json:"run"`
}

// EpisodeCommittedEventData is the data payload for committed episodes.
type EpisodeCommittedEventData struct {
	EpisodeID int64 `json:"episode_id"`
	Year      int   `json:"year"`
	Ordinal   int   `json:"ordinal"`
	Attempts  int   `json:"attempts"`
}

// DeadEndEventData is the data payload for dead ends.
type DeadEndEventData struct {
	Year    int    `json:"year"`
	Ordinal int    `json:"ordinal"`
	Stage   string `json:"stage"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewRunStartedEvent creates a run.started event.
func NewRunStartedEvent(run *domain.GenerationRun) Event {
	return Event{
		Type:      EventRunStarted,
		RunID:     run.ID,
		Data:      RunEventData{Run: run},
		Timestamp: time.Now(),
	}
}

// NewRunFinishedEvent creates a run.finished event.
func NewRunFinishedEvent(run *domain.GenerationRun) Event {
	return Event{
		Type:      EventRunFinished,
		RunID:     run.ID,
		Data:      RunEventData{Run: run},
		Timestamp: time.Now(),
	}
}

// NewEpisodeCommittedEvent creates an episode.committed event.
func NewEpisodeCommittedEvent(runID string, ep *domain.Episode, attempts int) Event {
	return Event{
		Type:  EventEpisodeCommitted,
		RunID: runID,
		Data: EpisodeCommittedEventData{
			EpisodeID: ep.ID,
			Year:      ep.Year,
			Ordinal:   ep.Ordinal,
			Attempts:  attempts,
		},
		Timestamp: time.Now(),
	}
}

// NewDeadEndEvent creates an episode.dead_end event.
func NewDeadEndEvent(runID string, year, ordinal int, stage string) Event {
	return Event{
		Type:  EventEpisodeDeadEnd,
		RunID: runID,
		Data: DeadEndEventData{
			Year:    year,
			Ordinal: ordinal,
			Stage:   stage,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
