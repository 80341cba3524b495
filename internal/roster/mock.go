package roster

import (
	"context"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	UpsertPlayerFunc      func(ctx context.Context, rec tournament.PlayerRecord) (tournament.Player, error)
	UpsertPlayersFunc     func(ctx context.Context, recs []tournament.PlayerRecord) (tournament.BatchResult, error)
	GetPlayerFunc         func(ctx context.Context, id int64) (tournament.Player, error)
	FindPlayerFunc        func(ctx context.Context, key tournament.PlayerKey) (tournament.Player, error)
	ListPlayersFunc       func(ctx context.Context, f Filter) ([]tournament.Player, error)
	ListFilterOptionsFunc func(ctx context.Context) (FilterOptions, error)
	AvailabilityFunc      func(ctx context.Context) (Availability, error)
	CountPlayersFunc      func(ctx context.Context) (int, error)
	SetSchoolActiveFunc   func(ctx context.Context, school string, active bool) (int64, error)

	// Call records
	UpsertPlayerCalls    []tournament.PlayerRecord
	UpsertPlayersCalls   [][]tournament.PlayerRecord
	ListPlayersCalls     []Filter
	SetSchoolActiveCalls []struct {
		School string
		Active bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(ctx context.Context, rec tournament.PlayerRecord) (tournament.Player, error) {
	m.mu.Lock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, rec)
	m.mu.Unlock()
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(ctx, rec)
	}
	return tournament.Player{Name: rec.Name, School: rec.School}, nil
}

func (m *MockStore) UpsertPlayers(ctx context.Context, recs []tournament.PlayerRecord) (tournament.BatchResult, error) {
	m.mu.Lock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, recs)
	m.mu.Unlock()
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(ctx, recs)
	}
	return tournament.BatchResult{Written: len(recs)}, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id int64) (tournament.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, id)
	}
	return tournament.Player{}, tournament.ErrNotFound
}

func (m *MockStore) FindPlayer(ctx context.Context, key tournament.PlayerKey) (tournament.Player, error) {
	if m.FindPlayerFunc != nil {
		return m.FindPlayerFunc(ctx, key)
	}
	return tournament.Player{}, tournament.ErrNotFound
}

func (m *MockStore) ListPlayers(ctx context.Context, f Filter) ([]tournament.Player, error) {
	m.mu.Lock()
	m.ListPlayersCalls = append(m.ListPlayersCalls, f)
	m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx, f)
	}
	return []tournament.Player{}, nil
}

func (m *MockStore) ListFilterOptions(ctx context.Context) (FilterOptions, error) {
	if m.ListFilterOptionsFunc != nil {
		return m.ListFilterOptionsFunc(ctx)
	}
	return FilterOptions{}, nil
}

func (m *MockStore) Availability(ctx context.Context) (Availability, error) {
	if m.AvailabilityFunc != nil {
		return m.AvailabilityFunc(ctx)
	}
	return Availability{}, nil
}

func (m *MockStore) CountPlayers(ctx context.Context) (int, error) {
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc(ctx)
	}
	return 0, nil
}

func (m *MockStore) SetSchoolActive(ctx context.Context, school string, active bool) (int64, error) {
	m.mu.Lock()
	m.SetSchoolActiveCalls = append(m.SetSchoolActiveCalls, struct {
		School string
		Active bool
	}{school, active})
	m.mu.Unlock()
	if m.SetSchoolActiveFunc != nil {
		return m.SetSchoolActiveFunc(ctx, school, active)
	}
	return 0, nil
}
