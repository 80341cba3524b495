package notifier

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about draft events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendLeaderboard(ctx context.Context, standings []tournament.Standing, dryRun bool) error
	SendPickAnnouncement(ctx context.Context, pick tournament.DraftBoardEntry, dryRun bool) error
	SendDraftReset(ctx context.Context, removed int64, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(standings []tournament.Standing) (any, error)
	FormatDraftBoardResponse(entries []tournament.DraftBoardEntry) (any, error)
}

// ErrDisabled is returned by Nop when asked to format a chat response.
var ErrDisabled = errors.New("notifications are not configured")

// Nop drops every notification. It is used when no chat workspace is configured.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) SendLeaderboard(ctx context.Context, standings []tournament.Standing, dryRun bool) error {
	log.Debug("Notifications disabled, dropping leaderboard", "participants", len(standings))
	return nil
}

func (Nop) SendPickAnnouncement(ctx context.Context, pick tournament.DraftBoardEntry, dryRun bool) error {
	log.Debug("Notifications disabled, dropping pick announcement", "pickID", pick.ID)
	return nil
}

func (Nop) SendDraftReset(ctx context.Context, removed int64, dryRun bool) error {
	return nil
}

func (Nop) FormatLeaderboardResponse(standings []tournament.Standing) (any, error) {
	return nil, ErrDisabled
}

func (Nop) FormatDraftBoardResponse(entries []tournament.DraftBoardEntry) (any, error) {
	return nil, ErrDisabled
}
