package config_test

import (
	"testing"
	"time"

	"github.com/mauv0809/bracket-draft/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{"DB_NAME": "bracket.db"}))
	require.NoError(t, err)

	assert.Equal(t, "bracket.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2025, cfg.TournamentYear)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.True(t, cfg.Refresh.Enabled)
	assert.True(t, cfg.Refresh.SeedOnStartup)
	assert.Equal(t, 24*time.Hour, cfg.Refresh.TournamentInterval)
	assert.Equal(t, time.Hour, cfg.Refresh.ScoreInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.False(t, cfg.LegacySortOrder)
	assert.False(t, cfg.Slack.Enabled())
	assert.Empty(t, cfg.ProjectID)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"DB_NAME":                "bracket.db",
		"PORT":                   "9000",
		"TOURNAMENT_YEAR":        "2024",
		"REFRESH_ENABLED":        "false",
		"SCORE_REFRESH_INTERVAL": "15m",
		"CORS_ALLOW_ORIGINS":     "https://a.example, https://b.example",
		"LEGACY_SORT_ORDER":      "true",
		"SLACK_BOT_TOKEN":        "xoxb-1",
		"SLACK_CHANNEL_ID":       "C1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2024, cfg.TournamentYear)
	assert.False(t, cfg.Refresh.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Refresh.ScoreInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.LegacySortOrder)
	assert.True(t, cfg.Slack.Enabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing db name", map[string]string{}},
		{"bad year", map[string]string{"DB_NAME": "x", "TOURNAMENT_YEAR": "soon"}},
		{"bad bool", map[string]string{"DB_NAME": "x", "SEED_ON_STARTUP": "maybe"}},
		{"bad duration", map[string]string{"DB_NAME": "x", "RATE_LIMIT_WINDOW": "1 minute"}},
		{"zero interval", map[string]string{"DB_NAME": "x", "SCORE_REFRESH_INTERVAL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromEnv(env(tt.vars))
			assert.Error(t, err)
		})
	}
}
