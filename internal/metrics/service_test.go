package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncRefreshRuns("scores")
	s.IncRefreshRuns("scores")
	s.IncRefreshFailures("tournament")
	s.ObserveRefreshDuration("scores", 0.2)
	s.AddRecordsSkipped(3)
	s.IncPicksRecorded()
	s.IncPickConflicts()

	body := scrape(t, reg)
	assert.Contains(t, body, `bracket_refresh_runs_total{job="scores"} 2`)
	assert.Contains(t, body, `bracket_refresh_failures_total{job="tournament"} 1`)
	assert.Contains(t, body, `bracket_refresh_duration_seconds_count{job="scores"} 1`)
	assert.Contains(t, body, "bracket_ingest_records_skipped_total 3")
	assert.Contains(t, body, "bracket_draft_picks_recorded_total 1")
	assert.Contains(t, body, "bracket_draft_pick_conflicts_total 1")
}

func TestMetricsHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncSlackNotifSent()
	s.SetStartupTime(1.5)

	body := scrape(t, reg)
	assert.Contains(t, body, "bracket_slack_notifications_sent_total 1")
	assert.Contains(t, body, "bracket_startup_duration_seconds 1.5")
}

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()
	m.IncRefreshRuns("scores")
	m.IncRefreshFailures("scores")
	m.AddRecordsSkipped(2)
	m.AddRecordsSkipped(1)

	assert.Equal(t, 1, m.RefreshRuns("scores"))
	assert.Equal(t, 1, m.RefreshFailures("scores"))
	assert.Equal(t, 0, m.RefreshRuns("tournament"))
	assert.Equal(t, 3, m.RecordsSkipped())
}
