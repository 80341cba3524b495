package source

import (
	"context"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// MockSource is a mock implementation of the TournamentSource interface for
// testing. Unset funcs fall back to an empty answer.
type MockSource struct {
	mu sync.Mutex

	TeamsFunc          func(ctx context.Context, year int, refresh bool) ([]Team, error)
	RosterFunc         func(ctx context.Context, team string, year int, refresh bool) ([]RosterPlayer, error)
	SeasonAveragesFunc func(ctx context.Context, player, team string, year int, refresh bool) (Averages, error)
	GamesFunc          func(ctx context.Context, year int, refresh bool) ([]tournament.GameRecord, error)
	GameLineFunc       func(ctx context.Context, player, team string, gameID int64, year int, refresh bool) (tournament.StatValues, error)

	// Call records
	TeamsCalls    int
	RosterCalls   []string
	GamesRefresh  []bool
	GameLineCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockSource {
	return &MockSource{}
}

func (m *MockSource) Teams(ctx context.Context, year int, refresh bool) ([]Team, error) {
	m.mu.Lock()
	m.TeamsCalls++
	m.mu.Unlock()
	if m.TeamsFunc != nil {
		return m.TeamsFunc(ctx, year, refresh)
	}
	return nil, nil
}

func (m *MockSource) Roster(ctx context.Context, team string, year int, refresh bool) ([]RosterPlayer, error) {
	m.mu.Lock()
	m.RosterCalls = append(m.RosterCalls, team)
	m.mu.Unlock()
	if m.RosterFunc != nil {
		return m.RosterFunc(ctx, team, year, refresh)
	}
	return nil, nil
}

func (m *MockSource) SeasonAverages(ctx context.Context, player, team string, year int, refresh bool) (Averages, error) {
	if m.SeasonAveragesFunc != nil {
		return m.SeasonAveragesFunc(ctx, player, team, year, refresh)
	}
	return Averages{}, nil
}

func (m *MockSource) Games(ctx context.Context, year int, refresh bool) ([]tournament.GameRecord, error) {
	m.mu.Lock()
	m.GamesRefresh = append(m.GamesRefresh, refresh)
	m.mu.Unlock()
	if m.GamesFunc != nil {
		return m.GamesFunc(ctx, year, refresh)
	}
	return nil, nil
}

func (m *MockSource) GameLine(ctx context.Context, player, team string, gameID int64, year int, refresh bool) (tournament.StatValues, error) {
	m.mu.Lock()
	m.GameLineCalls++
	m.mu.Unlock()
	if m.GameLineFunc != nil {
		return m.GameLineFunc(ctx, player, team, gameID, year, refresh)
	}
	return tournament.StatValues{}, nil
}
