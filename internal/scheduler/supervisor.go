package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/bracket-draft/internal/ingest"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/pubsub"
)

// New creates a supervisor. Jobs are registered by Start.
func New(refresher Refresher, board leaderboard.Aggregator, n notifier.Notifier, events pubsub.PubSubClient, m metrics.Metrics, opts Options) (*Supervisor, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Supervisor{
		sched:     sched,
		refresher: refresher,
		board:     board,
		notifier:  n,
		events:    events,
		metrics:   m,
		opts:      opts,
	}, nil
}

// Start registers the tournament and score refresh jobs and starts the scheduler.
// Jobs run in singleton mode: a run still in progress delays the next one.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) (ingest.Result, error)
	}{
		{ingest.JobTournament, s.opts.TournamentInterval, s.RunTournamentRefresh},
		{ingest.JobScores, s.opts.ScoreInterval, s.RunScoreRefresh},
	}
	for _, j := range jobs {
		run := j.run
		_, err := s.sched.NewJob(
			gocron.DurationJob(j.interval),
			gocron.NewTask(func() {
				// Failures are logged and counted by the run itself.
				_, _ = run(s.context())
			}),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule %s refresh: %w", j.name, err)
		}
		log.Info("Scheduled refresh job", "job", j.name, "interval", j.interval)
	}

	s.sched.Start()
	return nil
}

func (s *Supervisor) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Supervisor) Shutdown() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	return s.sched.Shutdown()
}

// Seed runs a full refresh when no players are stored yet.
func (s *Supervisor) Seed(ctx context.Context) error {
	start := time.Now()
	seeded, res, err := s.refresher.SeedIfEmpty(ctx)
	if !seeded && err == nil {
		log.Info("Player table already populated, skipping initial seed")
		return nil
	}
	s.record(ctx, ingest.JobTournament, start, res, err)
	return err
}

// RunTournamentRefresh reloads teams, rosters and games.
func (s *Supervisor) RunTournamentRefresh(ctx context.Context) (ingest.Result, error) {
	start := time.Now()
	res, err := s.refresher.RefreshTournament(ctx)
	s.record(ctx, ingest.JobTournament, start, res, err)
	return res, err
}

// RunScoreRefresh reloads game scores and stat lines, then posts the
// leaderboard when new stat lines were written.
func (s *Supervisor) RunScoreRefresh(ctx context.Context) (ingest.Result, error) {
	start := time.Now()
	res, err := s.refresher.RefreshGameScores(ctx)
	s.record(ctx, ingest.JobScores, start, res, err)
	if err == nil && res.StatsWritten > 0 {
		s.postLeaderboard(ctx)
	}
	return res, err
}

func (s *Supervisor) record(ctx context.Context, job string, start time.Time, res ingest.Result, err error) {
	s.metrics.IncRefreshRuns(job)
	s.metrics.ObserveRefreshDuration(job, time.Since(start).Seconds())
	s.metrics.AddRecordsSkipped(len(res.Skipped))

	failed := err != nil || len(res.Errors) > 0
	switch {
	case err != nil:
		s.metrics.IncRefreshFailures(job)
		log.Error("Refresh failed", "job", job, "error", err)
	case failed:
		s.metrics.IncRefreshFailures(job)
		log.Warn("Refresh finished with errors", "job", job, "summary", res.Summary(), "error", res.Err())
	default:
		log.Info("Refresh finished", "job", job, "summary", res.Summary())
	}

	event := pubsub.RefreshEvent{
		Job:        job,
		Players:    res.PlayersWritten,
		Games:      res.GamesWritten,
		Stats:      res.StatsWritten,
		Skipped:    len(res.Skipped),
		Failed:     failed,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.SendMessage(ctx, pubsub.EventDataRefreshed, event); err != nil {
		log.Warn("Failed to publish refresh event", "job", job, "error", err)
	}
}

func (s *Supervisor) postLeaderboard(ctx context.Context) {
	standings, err := s.board.Leaderboard(ctx)
	if err != nil {
		log.Error("Failed to compute leaderboard for notification", "error", err)
		return
	}
	if err := s.notifier.SendLeaderboard(ctx, standings, false); err != nil {
		log.Error("Failed to send leaderboard", "error", err)
	}
}
