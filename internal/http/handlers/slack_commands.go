package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func LeaderboardCommandHandler(board leaderboard.Aggregator, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := board.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			log.Error("Failed to compute leaderboard", "error", err)
			return
		}

		msg, err := notifier.FormatLeaderboardResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func DraftBoardCommandHandler(store draft.DraftStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.DraftBoard(r.Context())
		if err != nil {
			http.Error(w, "Failed to load draft board", http.StatusInternalServerError)
			log.Error("Failed to load draft board", "error", err)
			return
		}

		msg, err := notifier.FormatDraftBoardResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format draft board", http.StatusInternalServerError)
			log.Error("Failed to format draft board", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
