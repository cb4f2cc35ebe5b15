// Package metrics exposes Prometheus collectors for episode generation and
// the HTTP API.
//
// Usage:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	gen, _ := schedule.NewGenerator(ref, store, store, schedule.Options{Observer: m.Observer()})
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
)

const namespace = "competition"

// Metrics holds every collector the service records.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Generation

	RunsTotal       *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	EpisodesTotal   prometheus.Counter
	AttemptsTotal   prometheus.Counter
	DeadEndsTotal   *prometheus.CounterVec
	RestoresTotal   prometheus.Counter
	EpisodeAttempts prometheus.Histogram
	RunInProgress   prometheus.Gauge

	// HTTP

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter

	// Search

	SearchQueries *prometheus.CounterVec
}

// New registers the collectors with reg. Passing a fresh prometheus.Registry
// keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	m := &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_runs_total",
			Help:      "Generation runs by final status",
		}, []string{"status"}),

		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_run_duration_seconds",
			Help:      "Wall time of a generation run",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),

		EpisodesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_generated_total",
			Help:      "Episodes committed by the generator",
		}),

		AttemptsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episode_attempts_total",
			Help:      "Episode attempts started, including retries",
		}),

		DeadEndsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episode_dead_ends_total",
			Help:      "Attempts abandoned because a selection stage ran out of candidates",
		}, []string{"stage"}),

		RestoresTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracker_restores_total",
			Help:      "Tracker rollbacks to a pre-attempt snapshot",
		}),

		EpisodeAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "episode_attempts",
			Help:      "Attempts needed per committed episode",
			Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100},
		}),

		RunInProgress: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_in_progress",
			Help:      "1 while a generation run holds the generator",
		}),

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests refused by the rate limiter",
		}),

		SearchQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Catalogue searches by entity type",
		}, []string{"type"}),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordRun records the outcome of a finished run.
func (m *Metrics) RecordRun(status domain.RunStatus, elapsed time.Duration) {
	m.RunsTotal.WithLabelValues(string(status)).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSearch counts a catalogue search. An empty type means all types.
func (m *Metrics) RecordSearch(entityType string) {
	if entityType == "" {
		entityType = "all"
	}
	m.SearchQueries.WithLabelValues(entityType).Inc()
}

// Observer returns a schedule.Observer that feeds the generation collectors.
func (m *Metrics) Observer() schedule.Observer {
	return observer{m: m}
}

type observer struct {
	m *Metrics
}

func (o observer) AttemptStarted(_, _, _ int) {
	o.m.AttemptsTotal.Inc()
}

func (o observer) DeadEnd(_, _ int, stage schedule.Stage) {
	o.m.DeadEndsTotal.WithLabelValues(stage.String()).Inc()
}

func (o observer) Restored(_, _ int) {
	o.m.RestoresTotal.Inc()
}

func (o observer) Committed(_ *domain.Episode, attempts int) {
	o.m.EpisodesTotal.Inc()
	o.m.EpisodeAttempts.Observe(float64(attempts))
}
