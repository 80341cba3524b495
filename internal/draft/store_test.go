package draft_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	draft   draft.DraftStore
	players roster.RosterStore
	db      *sql.DB
}

func setupTestDB(t *testing.T) (fixture, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return fixture{draft: draft.New(db), players: roster.New(db), db: db}, teardown
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

func (f fixture) countPicks(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM draft_picks`).Scan(&n))
	return n
}

func TestCreateParticipant(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	p, err := f.draft.CreateParticipant(ctx, "  Alice ", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Alice", p.Name)

	got, err := f.draft.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = f.draft.CreateParticipant(ctx, " ", "")
	assert.ErrorIs(t, err, tournament.ErrValidation)

	_, err = f.draft.GetParticipant(ctx, "missing")
	assert.ErrorIs(t, err, tournament.ErrNotFound)
}

func TestListParticipants_CreationOrder(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()

	for _, name := range []string{"Zed", "Amy", "Moe"} {
		f.participant(t, name)
	}
	list, err := f.draft.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Zed", list[0].Name)
	assert.Equal(t, "Amy", list[1].Name)
	assert.Equal(t, "Moe", list[2].Name)
}

func TestRecordPick_AssignsNextPosition(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	p1 := f.player(t, "P1", "Duke")
	p2 := f.player(t, "P2", "Duke")
	p3 := f.player(t, "P3", "Duke")

	first, err := f.draft.RecordPick(ctx, alice.ID, p1.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, first.DraftPosition)
	assert.Equal(t, 1, *first.DraftPosition)

	ten := 10
	_, err = f.draft.RecordPick(ctx, alice.ID, p2.ID, &ten)
	require.NoError(t, err)

	third, err := f.draft.RecordPick(ctx, alice.ID, p3.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 11, *third.DraftPosition)
}

func TestRecordPick_AlreadyDrafted(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	bob := f.participant(t, "Bob")
	star := f.player(t, "Star", "UNC")

	_, err := f.draft.RecordPick(ctx, alice.ID, star.ID, nil)
	require.NoError(t, err)

	_, err = f.draft.RecordPick(ctx, bob.ID, star.ID, nil)
	assert.ErrorIs(t, err, tournament.ErrAlreadyDrafted)

	_, err = f.draft.RecordPick(ctx, alice.ID, star.ID, nil)
	assert.ErrorIs(t, err, tournament.ErrAlreadyDrafted)

	assert.Equal(t, 1, f.countPicks(t))
}

func TestRecordPick_NotFound(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	star := f.player(t, "Star", "UNC")

	_, err := f.draft.RecordPick(ctx, "nobody", star.ID, nil)
	assert.ErrorIs(t, err, tournament.ErrNotFound)

	_, err = f.draft.RecordPick(ctx, alice.ID, star.ID+100, nil)
	assert.ErrorIs(t, err, tournament.ErrNotFound)

	_, err = f.draft.RecordPick(ctx, "", star.ID, nil)
	assert.ErrorIs(t, err, tournament.ErrValidation)

	zero := 0
	_, err = f.draft.RecordPick(ctx, alice.ID, star.ID, &zero)
	assert.ErrorIs(t, err, tournament.ErrValidation)

	assert.Equal(t, 0, f.countPicks(t))
}

func TestRecordPick_ConcurrentAttemptsOnOnePlayer(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	star := f.player(t, "Star", "UNC")
	const attempts = 16
	participants := make([]tournament.Participant, attempts)
	for i := range participants {
		participants[i] = f.participant(t, fmt.Sprintf("P%d", i))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, drafted int
	for _, p := range participants {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.draft.RecordPick(ctx, id, star.ID, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, tournament.ErrAlreadyDrafted):
				drafted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(p.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, drafted)
	assert.Equal(t, 1, f.countPicks(t))
}

func TestDeletePick(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	star := f.player(t, "Star", "UNC")
	pick, err := f.draft.RecordPick(ctx, alice.ID, star.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.draft.DeletePick(ctx, pick.ID))
	assert.ErrorIs(t, f.draft.DeletePick(ctx, pick.ID), tournament.ErrNotFound)

	_, err = f.draft.RecordPick(ctx, alice.ID, star.ID, nil)
	assert.NoError(t, err, "a deleted pick frees the player")
}

func TestResetAllPicks(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	for i := 0; i < 3; i++ {
		p := f.player(t, fmt.Sprintf("P%d", i), "Duke")
		_, err := f.draft.RecordPick(ctx, alice.ID, p.ID, nil)
		require.NoError(t, err)
	}

	n, err := f.draft.ResetAllPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = f.draft.ResetAllPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0, f.countPicks(t))
}

func TestRemoveParticipant(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	bob := f.participant(t, "Bob")
	a := f.player(t, "A", "Duke")
	b := f.player(t, "B", "Duke")
	_, err := f.draft.RecordPick(ctx, alice.ID, a.ID, nil)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, bob.ID, b.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.draft.RemoveParticipant(ctx, alice.ID))

	list, err := f.draft.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].ID)

	picks, err := f.draft.ListPicks(ctx)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, bob.ID, picks[0].ParticipantID)

	assert.ErrorIs(t, f.draft.RemoveParticipant(ctx, alice.ID), tournament.ErrNotFound)
}

func TestDraftBoard_OrderedByPosition(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := f.participant(t, "Alice")
	bob := f.participant(t, "Bob")
	a := f.player(t, "A", "Duke")
	b := f.player(t, "B", "UNC")
	c := f.player(t, "C", "Baylor")

	five, two := 5, 2
	_, err := f.draft.RecordPick(ctx, alice.ID, a.ID, &five)
	require.NoError(t, err)
	_, err = f.draft.RecordPick(ctx, bob.ID, b.ID, &two)
	require.NoError(t, err)
	_, err = f.db.Exec(`INSERT INTO draft_picks (id, participant_id, player_id, draft_position, created_at) VALUES ('manual', ?, ?, NULL, 0)`, bob.ID, c.ID)
	require.NoError(t, err)

	board, err := f.draft.DraftBoard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "B", board[0].PlayerName)
	assert.Equal(t, "Bob", board[0].ParticipantName)
	assert.Equal(t, "A", board[1].PlayerName)
	assert.Equal(t, "C", board[2].PlayerName)
	assert.Nil(t, board[2].DraftPosition)
	assert.Equal(t, "Baylor", board[2].PlayerSchool)
}

func TestGetPick(t *testing.T) {
	f, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	ann := f.participant(t, "Ann")
	cole := f.player(t, "Cole", "Duke")
	pick, err := f.draft.RecordPick(ctx, ann.ID, cole.ID, nil)
	require.NoError(t, err)

	entry, err := f.draft.GetPick(ctx, pick.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", entry.ParticipantName)
	assert.Equal(t, "Cole", entry.PlayerName)
	assert.Equal(t, "Duke", entry.PlayerSchool)

	_, err = f.draft.GetPick(ctx, "missing")
	assert.ErrorIs(t, err, tournament.ErrNotFound)
}
