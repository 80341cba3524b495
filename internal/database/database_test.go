package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "participants", "draft_picks", "games", "player_game_stats"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_ForeignKeysEnabled(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	var enabled int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	_, err = db.Exec(`INSERT INTO draft_picks (id, participant_id, player_id, created_at) VALUES ('x', 'nobody', 1, 0)`)
	assert.Error(t, err, "a pick referencing missing rows should be rejected")
}

func TestInitDB_UniquePickPerPlayer(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (name, school, created_at, updated_at) VALUES ('A', 'Duke', 0, 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO participants (id, name, created_at) VALUES ('p1', 'One', 0), ('p2', 'Two', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO draft_picks (id, participant_id, player_id, created_at) VALUES ('d1', 'p1', 1, 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO draft_picks (id, participant_id, player_id, created_at) VALUES ('d2', 'p2', 1, 0)`)
	assert.Error(t, err)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	require.NoError(t, migrate(t.Context(), db))
}
