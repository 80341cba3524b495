package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncRefreshRuns(job string)
	IncRefreshFailures(job string)
	ObserveRefreshDuration(job string, seconds float64)
	AddRecordsSkipped(n int)
	IncPicksRecorded()
	IncPickConflicts()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(seconds float64)
}
