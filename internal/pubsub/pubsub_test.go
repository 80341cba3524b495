package pubsub_test

import (
	"testing"
	"time"

	"github.com/mauv0809/bracket-draft/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProcessMessage_DecodesPickEvent(t *testing.T) {
	pos := 4
	at := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	data, err := msgpack.Marshal(pubsub.PickEvent{
		PickID:        "p-1",
		ParticipantID: "u-1",
		PlayerID:      42,
		PlayerName:    "Cole",
		DraftPosition: &pos,
		OccurredAt:    at,
	})
	require.NoError(t, err)

	var got pubsub.PickEvent
	require.NoError(t, pubsub.NewNop().ProcessMessage(data, &got))
	assert.Equal(t, "p-1", got.PickID)
	assert.Equal(t, int64(42), got.PlayerID)
	require.NotNil(t, got.DraftPosition)
	assert.Equal(t, 4, *got.DraftPosition)
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	var got pubsub.ResetEvent
	assert.Error(t, pubsub.NewMock().ProcessMessage([]byte{0xc1}, &got))
}

func TestMock_RecordsCalls(t *testing.T) {
	m := pubsub.NewMock()
	require.NoError(t, m.SendMessage(t.Context(), pubsub.EventPicksReset, pubsub.ResetEvent{Removed: 3}))

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pubsub.EventPicksReset, calls[0].Topic)
	assert.Equal(t, int64(3), calls[0].Data.(pubsub.ResetEvent).Removed)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed)
}
