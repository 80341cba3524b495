package games

import (
	"context"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// GameStore defines the interface for tournament games and their box scores.
type GameStore interface {
	UpsertGame(ctx context.Context, rec tournament.GameRecord) (tournament.Game, error)
	UpsertGames(ctx context.Context, recs []tournament.GameRecord) (tournament.BatchResult, error)
	GetGame(ctx context.Context, id int64) (tournament.Game, error)
	FindGame(ctx context.Context, key tournament.GameKey) (tournament.Game, error)
	ListGames(ctx context.Context) ([]tournament.Game, error)
	UpsertPlayerGameStat(ctx context.Context, line tournament.StatLine) (tournament.PlayerGameStat, error)
	UpsertPlayerGameStats(ctx context.Context, lines []tournament.StatLine) (tournament.BatchResult, error)
	GameBreakdown(ctx context.Context, id int64) (tournament.GameBreakdown, error)
}
