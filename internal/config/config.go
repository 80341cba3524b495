package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. Only DB_NAME is required.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		DBName:   r.required("DB_NAME"),
		Port:     r.str("PORT", "8080"),
		LogLevel: r.str("LOG_LEVEL", "info"),
		Turso: TursoConfig{
			PrimaryURL: r.str("TURSO_PRIMARY_URL", ""),
			AuthToken:  r.str("TURSO_AUTH_TOKEN", ""),
		},
		TournamentYear: r.integer("TOURNAMENT_YEAR", 2025),
		DataDir:        r.str("DATA_DIR", "./data"),
		Refresh: RefreshConfig{
			Enabled:            r.boolean("REFRESH_ENABLED", true),
			TournamentInterval: r.duration("TOURNAMENT_REFRESH_INTERVAL", 24*time.Hour),
			ScoreInterval:      r.duration("SCORE_REFRESH_INTERVAL", time.Hour),
			SeedOnStartup:      r.boolean("SEED_ON_STARTUP", true),
		},
		CORSAllowOrigins: r.list("CORS_ALLOW_ORIGINS", []string{"*"}),
		RateLimit: RateLimitConfig{
			Requests: r.integer("RATE_LIMIT_REQUESTS", 30),
			Window:   r.duration("RATE_LIMIT_WINDOW", time.Minute),
		},
		LegacySortOrder: r.boolean("LEGACY_SORT_ORDER", false),
		Slack: SlackConfig{
			Token:         r.str("SLACK_BOT_TOKEN", ""),
			ChannelID:     r.str("SLACK_CHANNEL_ID", ""),
			SigningSecret: r.str("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID: r.str("GCP_PROJECT", ""),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	if cfg.Refresh.TournamentInterval <= 0 || cfg.Refresh.ScoreInterval <= 0 {
		return Config{}, fmt.Errorf("refresh intervals must be positive")
	}
	return cfg, nil
}

// reader keeps the first lookup error so Load can report it once.
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
}

func (r *reader) required(key string) string {
	if value, ok := r.lookup(key); ok && value != "" {
		return value
	}
	if r.err == nil {
		r.err = fmt.Errorf("required environment variable %s is not set", key)
	}
	return ""
}

func (r *reader) str(key, def string) string {
	if value, ok := r.lookup(key); ok && value != "" {
		return value
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	value := r.str(key, "")
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.fail(key, value, err)
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	value := r.str(key, "")
	if value == "" {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.fail(key, value, err)
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	value := r.str(key, "")
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.fail(key, value, err)
		return def
	}
	return d
}

func (r *reader) list(key string, def []string) []string {
	value := r.str(key, "")
	if value == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
