package leaderboard_test

import (
	"context"
	"testing"

	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	players roster.RosterStore
	games   games.GameStore
	draft   draft.DraftStore
	board   leaderboard.Aggregator
}

func setupTestDB(t *testing.T) (fixture, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return fixture{
		players: roster.New(db),
		games:   games.New(db),
		draft:   draft.New(db),
		board:   leaderboard.New(db),
	}, teardown
}

func (f fixture) player(t *testing.T, name, school string) tournament.Player {
	t.Helper()
	p, err := f.players.UpsertPlayer(context.Background(), tournament.PlayerRecord{Name: name, School: school})
	require.NoError(t, err)
	return p
}

func (f fixture) participant(t *testing.T, name string) tournament.Participant {
	t.Helper()
	p, err := f.draft.CreateParticipant(context.Background(), name, "")
	require.NoError(t, err)
	return p
}

func (f fixture) game(t *testing.T, id int64, team1, team2 string) {
	t.Helper()
	_, err := f.games.UpsertGame(context.Background(), tournament.GameRecord{
		ExternalID: id, Round: 1, GameDate: "2025-03-20", Team1: team1, Team2: team2, Status: tournament.GameCompleted,
	})
	require.NoError(t, err)
}

func (f fixture) points(t *testing.T, p tournament.Player, gameID int64, team1, team2 string, points int) {
	t.Helper()
	_, err := f.games.UpsertPlayerGameStat(context.Background(), tournament.StatLine{
		PlayerName: p.Name, School: p.School, GameID: gameID, Team1: team1, Team2: team2,
		StatValues: tournament.StatValues{Points: points},
	})
	require.NoError(t, err)
}

func TestScore_SumsAcrossGamesAndDropsDeletedPicks(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := f.participant(t, "A")
	x := f.player(t, "X", "Duke")
	y := f.player(t, "Y", "UNC")
	f.game(t, 1, "Duke", "Vermont")
	f.game(t, 2, "UNC", "Iona")
	f.points(t, x, 1, "Duke", "Vermont", 10)
	f.points(t, y, 2, "UNC", "Iona", 7)

	pickX, err := f.draft.RecordPick(ctx, a.ID, x.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, a.ID, y.ID, nil)
	require.NoError(t, err)

	score, err := f.board.Score(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, score)

	require.NoError(t, f.draft.DeletePick(ctx, pickX.ID))
	score, err = f.board.Score(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, score)
}

func TestScore_ZeroWithoutStatsAndNotFoundForUnknown(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := f.participant(t, "A")
	x := f.player(t, "X", "Duke")
	_, err := f.draft.RecordPick(ctx, a.ID, x.ID, nil)
	require.NoError(t, err)

	score, err := f.board.Score(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	_, err = f.board.Score(ctx, "missing")
	assert.ErrorIs(t, err, tournament.ErrNotFound)
}

func TestLeaderboard_ResetZeroesEveryScore(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := f.participant(t, "A")
	b := f.participant(t, "B")
	x := f.player(t, "X", "Duke")
	y := f.player(t, "Y", "UNC")
	f.game(t, 1, "Duke", "UNC")
	f.points(t, x, 1, "Duke", "UNC", 21)
	f.points(t, y, 1, "Duke", "UNC", 9)
	_, err := f.draft.RecordPick(ctx, a.ID, x.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, b.ID, y.ID, nil)
	require.NoError(t, err)

	_, err = f.draft.ResetAllPicks(ctx)
	require.NoError(t, err)

	standings, err := f.board.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	for _, s := range standings {
		assert.Equal(t, 0, s.Score)
		assert.Empty(t, s.Picks)
		assert.Equal(t, 1, s.Rank)
	}
}

func TestLeaderboard_OrderingAndPicks(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	first := f.participant(t, "First")
	second := f.participant(t, "Second")
	third := f.participant(t, "Third")
	x := f.player(t, "X", "Duke")
	y := f.player(t, "Y", "Duke")
	z := f.player(t, "Z", "UNC")
	f.game(t, 1, "Duke", "UNC")
	f.points(t, x, 1, "Duke", "UNC", 5)
	f.points(t, y, 1, "Duke", "UNC", 12)
	f.points(t, z, 1, "Duke", "UNC", 5)

	_, err := f.draft.RecordPick(ctx, first.ID, x.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, second.ID, y.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, third.ID, z.ID, nil)
	require.NoError(t, err)

	standings, err := f.board.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, "Second", standings[0].Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 12, standings[0].Score)
	require.Len(t, standings[0].Picks, 1)
	assert.Equal(t, "Y", standings[0].Picks[0].PlayerName)
	assert.Equal(t, 12, standings[0].Picks[0].Points)

	assert.Equal(t, "First", standings[1].Name, "ties keep creation order")
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, "Third", standings[2].Name)
	assert.Equal(t, 2, standings[2].Rank)
}

func TestLeaderboard_RemovedParticipantIsNotListed(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := f.participant(t, "A")
	b := f.participant(t, "B")
	x := f.player(t, "X", "Duke")
	y := f.player(t, "Y", "UNC")
	f.game(t, 1, "Duke", "UNC")
	f.points(t, y, 1, "Duke", "UNC", 4)
	_, err := f.draft.RecordPick(ctx, a.ID, x.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, b.ID, y.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.draft.RemoveParticipant(ctx, a.ID))

	standings, err := f.board.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "B", standings[0].Name)
	assert.Equal(t, 4, standings[0].Score)
}

func TestEndToEnd_DraftAndScore(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := f.participant(t, "A")
	x := f.player(t, "X", "Duke")
	f.player(t, "Y", "UNC")

	one, two := 1, 2
	_, err := f.draft.RecordPick(ctx, a.ID, x.ID, &one)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, a.ID, x.ID, &two)
	assert.ErrorIs(t, err, tournament.ErrAlreadyDrafted)

	f.game(t, 1, "Duke", "UNC")
	f.points(t, x, 1, "Duke", "UNC", 15)

	score, err := f.board.Score(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, score)
}

func TestRank_CompetitionRanking(t *testing.T) {
	standings := []tournament.Standing{
		{Name: "a", Score: 3},
		{Name: "b", Score: 9},
		{Name: "c", Score: 3},
		{Name: "d", Score: 1},
	}
	leaderboard.Rank(standings)

	var got []string
	var ranks []int
	for _, s := range standings {
		got = append(got, s.Name)
		ranks = append(ranks, s.Rank)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, got)
	assert.Equal(t, []int{1, 2, 2, 4}, ranks)
}
