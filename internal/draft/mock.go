package draft

import (
	"context"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// MockStore is a mock implementation of the DraftStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	CreateParticipantFunc func(ctx context.Context, name, email string) (tournament.Participant, error)
	GetParticipantFunc    func(ctx context.Context, id string) (tournament.Participant, error)
	ListParticipantsFunc  func(ctx context.Context) ([]tournament.Participant, error)
	RemoveParticipantFunc func(ctx context.Context, id string) error
	RecordPickFunc        func(ctx context.Context, participantID string, playerID int64, position *int) (tournament.DraftPick, error)
	GetPickFunc           func(ctx context.Context, pickID string) (tournament.DraftBoardEntry, error)
	DeletePickFunc        func(ctx context.Context, pickID string) error
	ResetAllPicksFunc     func(ctx context.Context) (int64, error)
	ListPicksFunc         func(ctx context.Context) ([]tournament.DraftBoardEntry, error)
	DraftBoardFunc        func(ctx context.Context) ([]tournament.DraftBoardEntry, error)

	// Call records
	RecordPickCalls []struct {
		ParticipantID string
		PlayerID      int64
		Position      *int
	}
	DeletePickCalls        []string
	RemoveParticipantCalls []string
	ResetAllPicksCalls     int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateParticipant(ctx context.Context, name, email string) (tournament.Participant, error) {
	if m.CreateParticipantFunc != nil {
		return m.CreateParticipantFunc(ctx, name, email)
	}
	return tournament.Participant{ID: "mock-participant", Name: name, Email: email}, nil
}

func (m *MockStore) GetParticipant(ctx context.Context, id string) (tournament.Participant, error) {
	if m.GetParticipantFunc != nil {
		return m.GetParticipantFunc(ctx, id)
	}
	return tournament.Participant{}, tournament.ErrNotFound
}

func (m *MockStore) ListParticipants(ctx context.Context) ([]tournament.Participant, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx)
	}
	return []tournament.Participant{}, nil
}

func (m *MockStore) RemoveParticipant(ctx context.Context, id string) error {
	m.mu.Lock()
	m.RemoveParticipantCalls = append(m.RemoveParticipantCalls, id)
	m.mu.Unlock()
	if m.RemoveParticipantFunc != nil {
		return m.RemoveParticipantFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) RecordPick(ctx context.Context, participantID string, playerID int64, position *int) (tournament.DraftPick, error) {
	m.mu.Lock()
	m.RecordPickCalls = append(m.RecordPickCalls, struct {
		ParticipantID string
		PlayerID      int64
		Position      *int
	}{participantID, playerID, position})
	m.mu.Unlock()
	if m.RecordPickFunc != nil {
		return m.RecordPickFunc(ctx, participantID, playerID, position)
	}
	return tournament.DraftPick{ID: "mock-pick", ParticipantID: participantID, PlayerID: playerID, DraftPosition: position}, nil
}

func (m *MockStore) GetPick(ctx context.Context, pickID string) (tournament.DraftBoardEntry, error) {
	if m.GetPickFunc != nil {
		return m.GetPickFunc(ctx, pickID)
	}
	return tournament.DraftBoardEntry{}, nil
}

func (m *MockStore) DeletePick(ctx context.Context, pickID string) error {
	m.mu.Lock()
	m.DeletePickCalls = append(m.DeletePickCalls, pickID)
	m.mu.Unlock()
	if m.DeletePickFunc != nil {
		return m.DeletePickFunc(ctx, pickID)
	}
	return nil
}

func (m *MockStore) ResetAllPicks(ctx context.Context) (int64, error) {
	m.mu.Lock()
	m.ResetAllPicksCalls++
	m.mu.Unlock()
	if m.ResetAllPicksFunc != nil {
		return m.ResetAllPicksFunc(ctx)
	}
	return 0, nil
}

func (m *MockStore) ListPicks(ctx context.Context) ([]tournament.DraftBoardEntry, error) {
	if m.ListPicksFunc != nil {
		return m.ListPicksFunc(ctx)
	}
	return []tournament.DraftBoardEntry{}, nil
}

func (m *MockStore) DraftBoard(ctx context.Context) ([]tournament.DraftBoardEntry, error) {
	if m.DraftBoardFunc != nil {
		return m.DraftBoardFunc(ctx)
	}
	return []tournament.DraftBoardEntry{}, nil
}
