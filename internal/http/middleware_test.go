package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/http/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	limiter := newIPLimiter(2, time.Minute)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		limiter.get(ip)
	}
	assert.Equal(t, 3, limiter.size())

	now = now.Add(30 * time.Second)
	limiter.get("10.0.0.1")
	assert.Equal(t, 3, limiter.size())

	now = now.Add(45 * time.Second)
	limiter.get("10.0.0.4")
	assert.Equal(t, 2, limiter.size(), "clients idle for a full window are dropped")

	now = now.Add(2 * time.Minute)
	limiter.get("10.0.0.5")
	assert.Equal(t, 1, limiter.size())
}

func TestIPLimiter_ActiveClientKeepsItsBucket(t *testing.T) {
	limiter := newIPLimiter(2, time.Hour)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.get("10.0.0.1").Allow())
	assert.True(t, limiter.get("10.0.0.1").Allow())

	now = now.Add(time.Minute)
	assert.False(t, limiter.get("10.0.0.1").Allow())
	assert.Equal(t, 1, limiter.size())
}

func TestParamsMiddleware_VerboseIsRequestScoped(t *testing.T) {
	globalLevel := log.GetLevel()

	var requestLevel log.Level
	var dryRun bool
	h := paramsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLevel = log.FromContext(r.Context()).GetLevel()
		dryRun, _ = r.Context().Value(handlers.DryRunKey).(bool)
		assert.Equal(t, globalLevel, log.GetLevel())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/players?verbose=true&dry_run=true", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, log.DebugLevel, requestLevel)
	assert.True(t, dryRun)
	assert.Equal(t, globalLevel, log.GetLevel())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/players", nil))
	assert.Equal(t, globalLevel, requestLevel)
	assert.False(t, dryRun)
}
