package roster

import (
	"context"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// RosterStore defines the interface for interacting with tournament players.
type RosterStore interface {
	UpsertPlayer(ctx context.Context, rec tournament.PlayerRecord) (tournament.Player, error)
	UpsertPlayers(ctx context.Context, recs []tournament.PlayerRecord) (tournament.BatchResult, error)
	GetPlayer(ctx context.Context, id int64) (tournament.Player, error)
	FindPlayer(ctx context.Context, key tournament.PlayerKey) (tournament.Player, error)
	ListPlayers(ctx context.Context, f Filter) ([]tournament.Player, error)
	ListFilterOptions(ctx context.Context) (FilterOptions, error)
	Availability(ctx context.Context) (Availability, error)
	CountPlayers(ctx context.Context) (int, error)
	SetSchoolActive(ctx context.Context, school string, active bool) (int64, error)
}
