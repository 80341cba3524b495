package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bracket_refresh_runs_total",
			Help: "The total number of tournament data refreshes started, by job.",
		}, []string{"job"}),
		RefreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bracket_refresh_failures_total",
			Help: "The total number of tournament data refreshes that failed, by job.",
		}, []string{"job"}),
		RefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bracket_refresh_duration_seconds",
			Help:    "The duration of tournament data refreshes.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"job"}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_ingest_records_skipped_total",
			Help: "The total number of ingested records skipped for missing references or invalid fields.",
		}),
		PicksRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_draft_picks_recorded_total",
			Help: "The total number of draft picks recorded.",
		}),
		PickConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_draft_pick_conflicts_total",
			Help: "The total number of draft picks rejected because the player was already drafted.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bracket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RefreshRuns,
		s.RefreshFailures,
		s.RefreshDuration,
		s.RecordsSkipped,
		s.PicksRecorded,
		s.PickConflicts,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRefreshRuns(job string) {
	s.RefreshRuns.WithLabelValues(job).Inc()
}

func (s *Service) IncRefreshFailures(job string) {
	s.RefreshFailures.WithLabelValues(job).Inc()
}

func (s *Service) ObserveRefreshDuration(job string, seconds float64) {
	s.RefreshDuration.WithLabelValues(job).Observe(seconds)
}

func (s *Service) AddRecordsSkipped(n int) {
	s.RecordsSkipped.Add(float64(n))
}

func (s *Service) IncPicksRecorded() {
	s.PicksRecorded.Inc()
}

func (s *Service) IncPickConflicts() {
	s.PickConflicts.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
