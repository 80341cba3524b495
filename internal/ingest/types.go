package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/source"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// Job names used in logs and metrics.
const (
	JobTournament = "tournament"
	JobScores     = "scores"
)

// Reconciler pulls tournament data from a source and writes it to the stores.
type Reconciler struct {
	source  source.TournamentSource
	players roster.RosterStore
	games   games.GameStore
	year    int
}

// Result summarizes one refresh run. Errors holds failures of single groups
// (a team roster, a game's stat lines) that did not stop the run.
type Result struct {
	Job                string                     `json:"job"`
	Teams              int                        `json:"teams"`
	PlayersWritten     int                        `json:"players_written"`
	GamesWritten       int                        `json:"games_written"`
	StatsWritten       int                        `json:"stats_written"`
	PlayersDeactivated int64                      `json:"players_deactivated"`
	Skipped            []tournament.SkippedRecord `json:"skipped,omitempty"`
	Errors             []string                   `json:"errors,omitempty"`
	Duration           time.Duration              `json:"duration_ns"`
}

// Summary formats the result for a single log line.
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s refresh: %d teams, %d players, %d games, %d stat lines", r.Job, r.Teams, r.PlayersWritten, r.GamesWritten, r.StatsWritten)
	if r.PlayersDeactivated > 0 {
		fmt.Fprintf(&b, ", %d players eliminated", r.PlayersDeactivated)
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", %d skipped", len(r.Skipped))
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, ", %d errors", len(r.Errors))
	}
	fmt.Fprintf(&b, " in %s", r.Duration.Round(time.Millisecond))
	return b.String()
}

// Err joins the group failures of the run, or returns nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = errors.New(e)
	}
	return errors.Join(errs...)
}
