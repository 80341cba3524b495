package source

import (
	"context"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// TournamentSource provides tournament data for one season. refresh asks
// caching implementations to bypass stored snapshots.
type TournamentSource interface {
	Teams(ctx context.Context, year int, refresh bool) ([]Team, error)
	Roster(ctx context.Context, team string, year int, refresh bool) ([]RosterPlayer, error)
	SeasonAverages(ctx context.Context, player, team string, year int, refresh bool) (Averages, error)
	Games(ctx context.Context, year int, refresh bool) ([]tournament.GameRecord, error)
	GameLine(ctx context.Context, player, team string, gameID int64, year int, refresh bool) (tournament.StatValues, error)
}
