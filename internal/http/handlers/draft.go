package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/pubsub"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

type recordPickRequest struct {
	ParticipantID string `json:"participant_id"`
	PlayerID      int64  `json:"player_id"`
	DraftPosition *int   `json:"draft_position"`
}

type resetResponse struct {
	Removed int64 `json:"removed"`
}

func pickEvent(e tournament.DraftBoardEntry) pubsub.PickEvent {
	return pubsub.PickEvent{
		PickID:          e.ID,
		ParticipantID:   e.ParticipantID,
		ParticipantName: e.ParticipantName,
		PlayerID:        e.PlayerID,
		PlayerName:      e.PlayerName,
		PlayerSchool:    e.PlayerSchool,
		DraftPosition:   e.DraftPosition,
		OccurredAt:      time.Now().UTC(),
	}
}

// publish sends an event and only logs failures; the write already succeeded.
func publish(ctx context.Context, events pubsub.PubSubClient, topic pubsub.EventType, data any, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would publish event", "topic", topic)
		return
	}
	if err := events.SendMessage(ctx, topic, data); err != nil {
		log.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}

func ListPicksHandler(store draft.DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		picks, err := store.ListPicks(r.Context())
		if err != nil {
			writeStoreError(w, err, "list draft picks")
			return
		}
		writeJSON(w, http.StatusOK, picks)
	}
}

// RecordPickHandler assigns a player to a participant. A player can be picked once.
func RecordPickHandler(store draft.DraftStore, m metrics.Metrics, n notifier.Notifier, events pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		var req recordPickRequest
		if err := decodeJSON(r, &req); err != nil {
			writeStoreError(w, err, "record draft pick")
			return
		}
		logger.Debug("Recording draft pick", "participantID", req.ParticipantID, "playerID", req.PlayerID, "position", req.DraftPosition)

		pick, err := store.RecordPick(r.Context(), req.ParticipantID, req.PlayerID, req.DraftPosition)
		if errors.Is(err, tournament.ErrAlreadyDrafted) {
			m.IncPickConflicts()
			logger.Info("Rejected pick of drafted player", "playerID", req.PlayerID, "participantID", req.ParticipantID)
		}
		if err != nil {
			writeStoreError(w, err, "record draft pick")
			return
		}
		m.IncPicksRecorded()
		logger.Info("Recorded draft pick", "pickID", pick.ID, "playerID", pick.PlayerID, "participantID", pick.ParticipantID)

		ctx := context.WithoutCancel(r.Context())
		dryRun := IsDryRunFromContext(r)
		entry, err := store.GetPick(ctx, pick.ID)
		if err != nil {
			logger.Warn("Failed to load recorded pick for announcement", "pickID", pick.ID, "error", err)
			entry = tournament.DraftBoardEntry{DraftPick: pick}
		}
		if err := n.SendPickAnnouncement(ctx, entry, dryRun); err != nil {
			logger.Error("Failed to announce pick", "pickID", pick.ID, "error", err)
		}
		publish(ctx, events, pubsub.EventPickRecorded, pickEvent(entry), dryRun)

		writeJSON(w, http.StatusCreated, pick)
	}
}

func DeletePickHandler(store draft.DraftStore, events pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		entry, lookupErr := store.GetPick(r.Context(), id)

		if err := store.DeletePick(r.Context(), id); err != nil {
			writeStoreError(w, err, "delete draft pick")
			return
		}
		log.Info("Deleted draft pick", "pickID", id)

		if lookupErr == nil {
			publish(context.WithoutCancel(r.Context()), events, pubsub.EventPickDeleted, pickEvent(entry), IsDryRunFromContext(r))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetPicksHandler removes every pick.
func ResetPicksHandler(store draft.DraftStore, n notifier.Notifier, events pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := store.ResetAllPicks(r.Context())
		if err != nil {
			writeStoreError(w, err, "reset draft picks")
			return
		}
		log.Info("Reset all draft picks", "removed", removed)

		ctx := context.WithoutCancel(r.Context())
		dryRun := IsDryRunFromContext(r)
		if err := n.SendDraftReset(ctx, removed, dryRun); err != nil {
			log.Error("Failed to announce draft reset", "error", err)
		}
		publish(ctx, events, pubsub.EventPicksReset, pubsub.ResetEvent{Removed: removed, OccurredAt: time.Now().UTC()}, dryRun)

		writeJSON(w, http.StatusOK, resetResponse{Removed: removed})
	}
}

func DraftBoardHandler(store draft.DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := store.DraftBoard(r.Context())
		if err != nil {
			writeStoreError(w, err, "load draft board")
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}
