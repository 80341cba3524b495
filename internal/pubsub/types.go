package pubsub

import (
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[EventType]*pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic id.
type EventType string

const (
	EventPickRecorded  EventType = "draft-pick-recorded"
	EventPickDeleted   EventType = "draft-pick-deleted"
	EventPicksReset    EventType = "draft-picks-reset"
	EventDataRefreshed EventType = "tournament-data-refreshed"
)

// PickEvent is published when a pick is recorded or deleted.
type PickEvent struct {
	PickID          string    `msgpack:"pick_id"`
	ParticipantID   string    `msgpack:"participant_id"`
	ParticipantName string    `msgpack:"participant_name,omitempty"`
	PlayerID        int64     `msgpack:"player_id"`
	PlayerName      string    `msgpack:"player_name,omitempty"`
	PlayerSchool    string    `msgpack:"player_school,omitempty"`
	DraftPosition   *int      `msgpack:"draft_position"`
	OccurredAt      time.Time `msgpack:"occurred_at"`
}

// ResetEvent is published after every pick was removed.
type ResetEvent struct {
	Removed    int64     `msgpack:"removed"`
	OccurredAt time.Time `msgpack:"occurred_at"`
}

// RefreshEvent is published after a data refresh job finished.
type RefreshEvent struct {
	Job        string    `msgpack:"job"`
	Players    int       `msgpack:"players"`
	Games      int       `msgpack:"games"`
	Stats      int       `msgpack:"stats"`
	Skipped    int       `msgpack:"skipped"`
	Failed     bool      `msgpack:"failed"`
	OccurredAt time.Time `msgpack:"occurred_at"`
}
