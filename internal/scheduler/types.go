package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/bracket-draft/internal/ingest"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/pubsub"
)

// Refresher is the part of the ingest reconciler the supervisor drives.
type Refresher interface {
	RefreshTournament(ctx context.Context) (ingest.Result, error)
	RefreshGameScores(ctx context.Context) (ingest.Result, error)
	SeedIfEmpty(ctx context.Context) (bool, ingest.Result, error)
}

// Options configures the periodic jobs.
type Options struct {
	TournamentInterval time.Duration
	ScoreInterval      time.Duration
}

// Supervisor owns the background refresh jobs.
type Supervisor struct {
	sched     gocron.Scheduler
	refresher Refresher
	board     leaderboard.Aggregator
	notifier  notifier.Notifier
	events    pubsub.PubSubClient
	metrics   metrics.Metrics
	opts      Options

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}
