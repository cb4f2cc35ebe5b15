package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestObserver(t *testing.T) {
	m := newTestMetrics(t)
	obs := m.Observer()

	obs.AttemptStarted(2020, 1, 1)
	obs.DeadEnd(2020, 1, schedule.StageRecipes)
	obs.Restored(2020, 1)
	obs.AttemptStarted(2020, 1, 2)
	obs.Committed(&domain.Episode{ID: 1}, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AttemptsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeadEndsTotal.WithLabelValues("recipes")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DeadEndsTotal.WithLabelValues("judges")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RestoresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EpisodesTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(m.EpisodeAttempts))
}

func TestRecordRun(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRun(domain.RunStatusCompleted, 2*time.Second)
	m.RecordRun(domain.RunStatusFailed, time.Second)
	m.RecordRun(domain.RunStatusCompleted, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("failed")))
}

func TestRecordRequest(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRequest(http.MethodGet, "/api/v1/episodes", http.StatusOK, 10*time.Millisecond)
	m.RecordRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/episodes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordSearch(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordSearch("")
	m.RecordSearch("cook")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueries.WithLabelValues("all")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueries.WithLabelValues("cook")))
}

func TestHandler(t *testing.T) {
	m := newTestMetrics(t)
	m.EpisodesTotal.Add(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "competition_episodes_generated_total 3")
}
