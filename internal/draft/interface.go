package draft

import (
	"context"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// DraftStore defines the interface for participants and their draft picks.
type DraftStore interface {
	CreateParticipant(ctx context.Context, name, email string) (tournament.Participant, error)
	GetParticipant(ctx context.Context, id string) (tournament.Participant, error)
	ListParticipants(ctx context.Context) ([]tournament.Participant, error)
	RemoveParticipant(ctx context.Context, id string) error

	RecordPick(ctx context.Context, participantID string, playerID int64, position *int) (tournament.DraftPick, error)
	GetPick(ctx context.Context, pickID string) (tournament.DraftBoardEntry, error)
	DeletePick(ctx context.Context, pickID string) error
	ResetAllPicks(ctx context.Context) (int64, error)
	ListPicks(ctx context.Context) ([]tournament.DraftBoardEntry, error)
	DraftBoard(ctx context.Context) ([]tournament.DraftBoardEntry, error)
}
