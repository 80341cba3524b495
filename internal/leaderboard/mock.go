package leaderboard

import (
	"context"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// MockAggregator is a mock implementation of the Aggregator interface for testing.
type MockAggregator struct {
	ScoreFunc       func(ctx context.Context, participantID string) (int, error)
	LeaderboardFunc func(ctx context.Context) ([]tournament.Standing, error)
}

// NewMock creates a new mock instance.
func NewMock() *MockAggregator {
	return &MockAggregator{}
}

func (m *MockAggregator) Score(ctx context.Context, participantID string) (int, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, participantID)
	}
	return 0, nil
}

func (m *MockAggregator) Leaderboard(ctx context.Context) ([]tournament.Standing, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx)
	}
	return []tournament.Standing{}, nil
}
