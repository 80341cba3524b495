package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

type createParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type scoreResponse struct {
	ParticipantID string `json:"participant_id"`
	Score         int    `json:"score"`
}

func ListParticipantsHandler(store draft.DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participants, err := store.ListParticipants(r.Context())
		if err != nil {
			writeStoreError(w, err, "list participants")
			return
		}
		writeJSON(w, http.StatusOK, participants)
	}
}

func CreateParticipantHandler(store draft.DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createParticipantRequest
		if err := decodeJSON(r, &req); err != nil {
			writeStoreError(w, err, "create participant")
			return
		}
		p, err := store.CreateParticipant(r.Context(), req.Name, req.Email)
		if err != nil {
			writeStoreError(w, err, "create participant")
			return
		}
		log.Info("Created participant", "participantID", p.ID, "name", p.Name)
		writeJSON(w, http.StatusCreated, p)
	}
}

// RemoveParticipantHandler deletes a participant together with its picks.
func RemoveParticipantHandler(store draft.DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.RemoveParticipant(r.Context(), id); err != nil {
			writeStoreError(w, err, "remove participant")
			return
		}
		log.Info("Removed participant", "participantID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ParticipantScoreHandler(board leaderboard.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		score, err := board.Score(r.Context(), id)
		if err != nil {
			writeStoreError(w, err, "compute score")
			return
		}
		writeJSON(w, http.StatusOK, scoreResponse{ParticipantID: id, Score: score})
	}
}

func LeaderboardHandler(board leaderboard.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := board.Leaderboard(r.Context())
		if err != nil {
			writeStoreError(w, err, "compute leaderboard")
			return
		}
		if standings == nil {
			standings = []tournament.Standing{}
		}
		writeJSON(w, http.StatusOK, standings)
	}
}
