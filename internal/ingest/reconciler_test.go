package ingest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/ingest"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/source"
	"github.com/mauv0809/bracket-draft/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	players roster.RosterStore
	games   games.GameStore
	db      *sql.DB
}

func setupTestDB(t *testing.T) (fixture, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return fixture{players: roster.New(db), games: games.New(db), db: db}, teardown
}

func (f fixture) countStats(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM player_game_stats`).Scan(&n))
	return n
}

func sample() source.TournamentSource {
	return source.NewSample(func() time.Time {
		return time.Date(2025, time.March, 20, 9, 0, 0, 0, time.UTC)
	})
}

func TestRefreshTournament_SampleBracket(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	r := ingest.New(sample(), f.players, f.games, 2025)
	res, err := r.RefreshTournament(ctx)
	require.NoError(t, err)
	require.NoError(t, res.Err())

	assert.Equal(t, 8, res.Teams)
	assert.Equal(t, 24, res.PlayersWritten)
	assert.Equal(t, 3, res.GamesWritten)
	assert.Equal(t, 6, res.StatsWritten, "Gonzaga and Baylor lines are stored")
	assert.Len(t, res.Skipped, 6, "opponents outside the field have no stored players")
	for _, s := range res.Skipped {
		assert.Contains(t, s.Error, "referenced entity not found")
	}
	assert.Contains(t, res.Summary(), "tournament refresh: 8 teams, 24 players, 3 games, 6 stat lines, 6 skipped")

	timme, err := f.players.FindPlayer(ctx, tournament.PlayerKey{Name: "Drew Timme", School: "Gonzaga"})
	require.NoError(t, err)
	require.NotNil(t, timme.Seed)
	assert.Equal(t, 1, *timme.Seed)
	assert.Equal(t, "West", timme.Region)
	require.NotNil(t, timme.PPG)
	assert.True(t, timme.Active)

	list, err := f.games.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Michigan", list[2].Team1)
	assert.False(t, list[2].Completed)
}

func TestRefreshTournament_IsIdempotent(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	r := ingest.New(sample(), f.players, f.games, 2025)
	_, err := r.RefreshTournament(ctx)
	require.NoError(t, err)
	first, err := f.players.ListPlayers(ctx, roster.Filter{})
	require.NoError(t, err)

	_, err = r.RefreshTournament(ctx)
	require.NoError(t, err)
	second, err := f.players.ListPlayers(ctx, roster.Filter{})
	require.NoError(t, err)

	require.Len(t, second, 24)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, *first[0].PPG, *second[0].PPG)
	assert.Equal(t, 6, f.countStats(t))

	list, err := f.games.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func bracketSource() *source.MockSource {
	mock := source.NewMock()
	mock.TeamsFunc = func(ctx context.Context, year int, refresh bool) ([]source.Team, error) {
		return []source.Team{{Name: "Duke", Seed: 1, Region: "East"}, {Name: "UNC", Seed: 8, Region: "East"}}, nil
	}
	mock.RosterFunc = func(ctx context.Context, team string, year int, refresh bool) ([]source.RosterPlayer, error) {
		return []source.RosterPlayer{{Name: team + " Guard", School: team, Position: "G"}}, nil
	}
	mock.GamesFunc = func(ctx context.Context, year int, refresh bool) ([]tournament.GameRecord, error) {
		s1, s2 := 70, 64
		return []tournament.GameRecord{{
			ExternalID: 10, Round: 2, GameDate: "2025-03-22", Team1: "Duke", Team2: "UNC",
			Team1Score: &s1, Team2Score: &s2, Status: tournament.GameCompleted,
		}}, nil
	}
	mock.GameLineFunc = func(ctx context.Context, player, team string, gameID int64, year int, refresh bool) (tournament.StatValues, error) {
		return tournament.StatValues{Points: 11}, nil
	}
	return mock
}

func TestRefreshTournament_MarksLosersInactive(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	r := ingest.New(bracketSource(), f.players, f.games, 2025)
	res, err := r.RefreshTournament(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.PlayersDeactivated)
	assert.Equal(t, 2, res.StatsWritten)

	loser, err := f.players.FindPlayer(ctx, tournament.PlayerKey{Name: "UNC Guard", School: "UNC"})
	require.NoError(t, err)
	assert.False(t, loser.Active)
	winner, err := f.players.FindPlayer(ctx, tournament.PlayerKey{Name: "Duke Guard", School: "Duke"})
	require.NoError(t, err)
	assert.True(t, winner.Active)

	res, err = r.RefreshTournament(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.PlayersDeactivated)
	loser, err = f.players.FindPlayer(ctx, tournament.PlayerKey{Name: "UNC Guard", School: "UNC"})
	require.NoError(t, err)
	assert.False(t, loser.Active, "a later roster refresh keeps the elimination")
}

func TestRefreshTournament_FailedTeamDoesNotStopOthers(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	mock := bracketSource()
	mock.RosterFunc = func(ctx context.Context, team string, year int, refresh bool) ([]source.RosterPlayer, error) {
		if team == "Duke" {
			return nil, errors.New("roster page unavailable")
		}
		return []source.RosterPlayer{{Name: team + " Guard", School: team}}, nil
	}

	r := ingest.New(mock, f.players, f.games, 2025)
	res, err := r.RefreshTournament(ctx)
	require.NoError(t, err)
	assert.Error(t, res.Err())
	assert.Equal(t, 1, res.PlayersWritten)

	n, err := f.players.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRefreshTournament_SourceFailure(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()

	mock := source.NewMock()
	mock.TeamsFunc = func(ctx context.Context, year int, refresh bool) ([]source.Team, error) {
		return nil, errors.New("bracket unavailable")
	}
	_, err := ingest.New(mock, f.players, f.games, 2025).RefreshTournament(context.Background())
	assert.ErrorContains(t, err, "failed to fetch teams")
}

func TestRefreshGameScores_BypassesCache(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	mock := bracketSource()
	r := ingest.New(mock, f.players, f.games, 2025)
	_, err := r.RefreshTournament(ctx)
	require.NoError(t, err)

	res, err := r.RefreshGameScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, ingest.JobScores, res.Job)
	assert.Equal(t, 1, res.GamesWritten)
	assert.Equal(t, []bool{false, true}, mock.GamesRefresh)
	assert.Equal(t, 2, f.countStats(t))
}

func TestSeedIfEmpty(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	mock := bracketSource()
	r := ingest.New(mock, f.players, f.games, 2025)

	seeded, _, err := r.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, _, err = r.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, 1, mock.TeamsCalls)
}
