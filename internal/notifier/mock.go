package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendLeaderboardCalls []struct {
		Standings []tournament.Standing
		DryRun    bool
	}
	SendPickAnnouncementCalls []struct {
		Pick   tournament.DraftBoardEntry
		DryRun bool
	}
	SendDraftResetCalls []int64

	// Spies
	SendLeaderboardFunc           func(standings []tournament.Standing, dryRun bool) error
	SendPickAnnouncementFunc      func(pick tournament.DraftBoardEntry, dryRun bool) error
	FormatLeaderboardResponseFunc func(standings []tournament.Standing) (any, error)
	FormatDraftBoardResponseFunc  func(entries []tournament.DraftBoardEntry) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = nil
	m.SendPickAnnouncementCalls = nil
	m.SendDraftResetCalls = nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, standings []tournament.Standing, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Standings []tournament.Standing
		DryRun    bool
	}{standings, dryRun})
	m.mu.Unlock()
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(standings, dryRun)
	}
	return nil
}

func (m *Mock) SendPickAnnouncement(ctx context.Context, pick tournament.DraftBoardEntry, dryRun bool) error {
	m.mu.Lock()
	m.SendPickAnnouncementCalls = append(m.SendPickAnnouncementCalls, struct {
		Pick   tournament.DraftBoardEntry
		DryRun bool
	}{pick, dryRun})
	m.mu.Unlock()
	if m.SendPickAnnouncementFunc != nil {
		return m.SendPickAnnouncementFunc(pick, dryRun)
	}
	return nil
}

func (m *Mock) SendDraftReset(ctx context.Context, removed int64, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDraftResetCalls = append(m.SendDraftResetCalls, removed)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(standings []tournament.Standing) (any, error) {
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(standings)
	}
	return standings, nil
}

func (m *Mock) FormatDraftBoardResponse(entries []tournament.DraftBoardEntry) (any, error) {
	if m.FormatDraftBoardResponseFunc != nil {
		return m.FormatDraftBoardResponseFunc(entries)
	}
	return entries, nil
}

// LeaderboardsSent returns how many leaderboards were sent.
func (m *Mock) LeaderboardsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendLeaderboardCalls)
}

// PickAnnouncements returns a copy of the recorded pick announcements.
func (m *Mock) PickAnnouncements() []tournament.DraftBoardEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tournament.DraftBoardEntry, len(m.SendPickAnnouncementCalls))
	for i, c := range m.SendPickAnnouncementCalls {
		out[i] = c.Pick
	}
	return out
}
