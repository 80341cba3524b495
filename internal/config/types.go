package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName           string
	Port             string
	LogLevel         string
	Turso            TursoConfig
	TournamentYear   int
	DataDir          string
	Refresh          RefreshConfig
	CORSAllowOrigins []string
	RateLimit        RateLimitConfig
	LegacySortOrder  bool
	Slack            SlackConfig
	ProjectID        string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type RefreshConfig struct {
	Enabled            bool
	TournamentInterval time.Duration
	ScoreInterval      time.Duration
	SeedOnStartup      bool
}

// RateLimitConfig bounds write requests to Requests per Window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether chat notifications can be sent.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}
