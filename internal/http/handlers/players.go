package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// ListPlayersHandler lists players filtered by position, school and region,
// sorted by sort_by and order. sort is accepted as an older name for sort_by.
func ListPlayersHandler(store roster.RosterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sortBy := q.Get("sort_by")
		if sortBy == "" {
			sortBy = q.Get("sort")
		}
		filter := roster.Filter{
			Position: q.Get("position"),
			School:   q.Get("school"),
			Region:   q.Get("region"),
			SortBy:   roster.SortKey(sortBy),
			Order:    roster.Order(q.Get("order")),
		}
		players, err := store.ListPlayers(r.Context(), filter)
		if err != nil {
			writeStoreError(w, err, "list players")
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(store roster.RosterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "id")
		if err != nil {
			writeStoreError(w, err, "get player")
			return
		}
		player, err := store.GetPlayer(r.Context(), id)
		if err != nil {
			writeStoreError(w, err, "get player")
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

// UpsertPlayerHandler creates a player or updates the one with the same name and school.
func UpsertPlayerHandler(store roster.RosterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec tournament.PlayerRecord
		if err := decodeJSON(r, &rec); err != nil {
			writeStoreError(w, err, "upsert player")
			return
		}
		player, err := store.UpsertPlayer(r.Context(), rec)
		if err != nil {
			writeStoreError(w, err, "upsert player")
			return
		}
		log.Info("Upserted player", "playerID", player.ID, "player", rec.Key())
		writeJSON(w, http.StatusOK, player)
	}
}

func PlayerFiltersHandler(store roster.RosterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := store.ListFilterOptions(r.Context())
		if err != nil {
			writeStoreError(w, err, "list filter options")
			return
		}
		writeJSON(w, http.StatusOK, opts)
	}
}

// AvailablePlayersHandler partitions players into drafted and undrafted.
func AvailablePlayersHandler(store roster.RosterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avail, err := store.Availability(r.Context())
		if err != nil {
			writeStoreError(w, err, "list available players")
			return
		}
		writeJSON(w, http.StatusOK, avail)
	}
}
