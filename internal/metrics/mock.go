package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	refreshRuns      map[string]int
	refreshFailures  map[string]int
	refreshDurations map[string][]float64
	recordsSkipped   int
	picksRecorded    int
	pickConflicts    int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		refreshRuns:      make(map[string]int),
		refreshFailures:  make(map[string]int),
		refreshDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncRefreshRuns(job string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshRuns[job]++
}

func (m *Mock) IncRefreshFailures(job string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshFailures[job]++
}

func (m *Mock) ObserveRefreshDuration(job string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshDurations[job] = append(m.refreshDurations[job], seconds)
}

func (m *Mock) AddRecordsSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordsSkipped += n
}

func (m *Mock) IncPicksRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picksRecorded++
}

func (m *Mock) IncPickConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickConflicts++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// RefreshRuns returns how often IncRefreshRuns was called for job.
func (m *Mock) RefreshRuns(job string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshRuns[job]
}

// RefreshFailures returns how often IncRefreshFailures was called for job.
func (m *Mock) RefreshFailures(job string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshFailures[job]
}

// RecordsSkipped returns the sum passed to AddRecordsSkipped.
func (m *Mock) RecordsSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordsSkipped
}

// PicksRecorded returns the number of times IncPicksRecorded was called.
func (m *Mock) PicksRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picksRecorded
}

// PickConflicts returns the number of times IncPickConflicts was called.
func (m *Mock) PickConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pickConflicts
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
