package games

import (
	"context"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// MockStore is a mock implementation of the GameStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	UpsertGameFunc            func(ctx context.Context, rec tournament.GameRecord) (tournament.Game, error)
	UpsertGamesFunc           func(ctx context.Context, recs []tournament.GameRecord) (tournament.BatchResult, error)
	GetGameFunc               func(ctx context.Context, id int64) (tournament.Game, error)
	FindGameFunc              func(ctx context.Context, key tournament.GameKey) (tournament.Game, error)
	ListGamesFunc             func(ctx context.Context) ([]tournament.Game, error)
	UpsertPlayerGameStatFunc  func(ctx context.Context, line tournament.StatLine) (tournament.PlayerGameStat, error)
	UpsertPlayerGameStatsFunc func(ctx context.Context, lines []tournament.StatLine) (tournament.BatchResult, error)
	GameBreakdownFunc         func(ctx context.Context, id int64) (tournament.GameBreakdown, error)

	// Call records
	UpsertGamesCalls           [][]tournament.GameRecord
	UpsertPlayerGameStatsCalls [][]tournament.StatLine
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertGame(ctx context.Context, rec tournament.GameRecord) (tournament.Game, error) {
	if m.UpsertGameFunc != nil {
		return m.UpsertGameFunc(ctx, rec)
	}
	return tournament.Game{ExternalID: rec.ExternalID, Team1: rec.Team1, Team2: rec.Team2, Status: rec.Status}, nil
}

func (m *MockStore) UpsertGames(ctx context.Context, recs []tournament.GameRecord) (tournament.BatchResult, error) {
	m.mu.Lock()
	m.UpsertGamesCalls = append(m.UpsertGamesCalls, recs)
	m.mu.Unlock()
	if m.UpsertGamesFunc != nil {
		return m.UpsertGamesFunc(ctx, recs)
	}
	return tournament.BatchResult{Written: len(recs)}, nil
}

func (m *MockStore) GetGame(ctx context.Context, id int64) (tournament.Game, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(ctx, id)
	}
	return tournament.Game{}, tournament.ErrNotFound
}

func (m *MockStore) FindGame(ctx context.Context, key tournament.GameKey) (tournament.Game, error) {
	if m.FindGameFunc != nil {
		return m.FindGameFunc(ctx, key)
	}
	return tournament.Game{}, tournament.ErrNotFound
}

func (m *MockStore) ListGames(ctx context.Context) ([]tournament.Game, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(ctx)
	}
	return []tournament.Game{}, nil
}

func (m *MockStore) UpsertPlayerGameStat(ctx context.Context, line tournament.StatLine) (tournament.PlayerGameStat, error) {
	if m.UpsertPlayerGameStatFunc != nil {
		return m.UpsertPlayerGameStatFunc(ctx, line)
	}
	return tournament.PlayerGameStat{StatValues: line.StatValues}, nil
}

func (m *MockStore) UpsertPlayerGameStats(ctx context.Context, lines []tournament.StatLine) (tournament.BatchResult, error) {
	m.mu.Lock()
	m.UpsertPlayerGameStatsCalls = append(m.UpsertPlayerGameStatsCalls, lines)
	m.mu.Unlock()
	if m.UpsertPlayerGameStatsFunc != nil {
		return m.UpsertPlayerGameStatsFunc(ctx, lines)
	}
	return tournament.BatchResult{Written: len(lines)}, nil
}

func (m *MockStore) GameBreakdown(ctx context.Context, id int64) (tournament.GameBreakdown, error) {
	if m.GameBreakdownFunc != nil {
		return m.GameBreakdownFunc(ctx, id)
	}
	return tournament.GameBreakdown{}, tournament.ErrNotFound
}
