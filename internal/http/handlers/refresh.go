package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/ingest"
)

// RefreshRunner runs the data refresh jobs on demand.
type RefreshRunner interface {
	RunTournamentRefresh(ctx context.Context) (ingest.Result, error)
	RunScoreRefresh(ctx context.Context) (ingest.Result, error)
}

// UpdateDataHandler runs a full tournament refresh and returns its summary.
func UpdateDataHandler(runner RefreshRunner) http.HandlerFunc {
	return refreshHandler(runner.RunTournamentRefresh)
}

// UpdateGameScoresHandler refreshes game scores and stat lines.
func UpdateGameScoresHandler(runner RefreshRunner) http.HandlerFunc {
	return refreshHandler(runner.RunScoreRefresh)
}

func refreshHandler(run func(context.Context) (ingest.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Manual refresh requested", "path", r.URL.Path)
		res, err := run(r.Context())
		if err != nil {
			WriteError(w, http.StatusBadGateway, "REFRESH_FAILED", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
