package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RefreshRuns        *prometheus.CounterVec
	RefreshFailures    *prometheus.CounterVec
	RefreshDuration    *prometheus.HistogramVec
	RecordsSkipped     prometheus.Counter
	PicksRecorded      prometheus.Counter
	PickConflicts      prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
