package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

func ListGamesHandler(store games.GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListGames(r.Context())
		if err != nil {
			writeStoreError(w, err, "list games")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// UpsertGameHandler records a game result by its natural key.
func UpsertGameHandler(store games.GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec tournament.GameRecord
		if err := decodeJSON(r, &rec); err != nil {
			writeStoreError(w, err, "upsert game")
			return
		}
		game, err := store.UpsertGame(r.Context(), rec)
		if err != nil {
			writeStoreError(w, err, "upsert game")
			return
		}
		log.Info("Upserted game", "gameID", game.ID, "game", rec.Key())
		writeJSON(w, http.StatusOK, game)
	}
}

// GameStatsHandler returns a game with the box score of each team.
func GameStatsHandler(store games.GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "id")
		if err != nil {
			writeStoreError(w, err, "load game stats")
			return
		}
		breakdown, err := store.GameBreakdown(r.Context(), id)
		if err != nil {
			writeStoreError(w, err, "load game stats")
			return
		}
		writeJSON(w, http.StatusOK, breakdown)
	}
}

// UpsertGameStatsHandler accepts a list of stat lines. Lines naming unknown
// players or games are reported as skipped.
func UpsertGameStatsHandler(store games.GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lines []tournament.StatLine
		if err := decodeJSON(r, &lines); err != nil {
			writeStoreError(w, err, "upsert game stats")
			return
		}
		res, err := store.UpsertPlayerGameStats(r.Context(), lines)
		if err != nil {
			writeStoreError(w, err, "upsert game stats")
			return
		}
		log.Info("Upserted game stats", "written", res.Written, "skipped", len(res.Skipped))
		writeJSON(w, http.StatusOK, res)
	}
}
