package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendLeaderboard(ctx context.Context, standings []tournament.Standing, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatLeaderboard(standings), dryRun)
	return err
}

func (s *Notifier) SendPickAnnouncement(ctx context.Context, pick tournament.DraftBoardEntry, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatPickAnnouncement(pick), dryRun)
	return err
}

func (s *Notifier) SendDraftReset(ctx context.Context, removed int64, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatDraftReset(removed), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(standings []tournament.Standing) (any, error) {
	return formatLeaderboard(standings), nil
}

// FormatDraftBoardResponse formats the draft board for a slash command response.
func (s *Notifier) FormatDraftBoardResponse(entries []tournament.DraftBoardEntry) (any, error) {
	return formatDraftBoard(entries), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func header(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// formatLeaderboard creates a Slack message with one section per participant.
func formatLeaderboard(standings []tournament.Standing) slack.Message {
	blocks := []slack.Block{header("🏀 Draft Leaderboard 🏀")}

	if len(standings) == 0 {
		blocks = append(blocks, plainSection("No participants yet. Start drafting!"))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		picks := make([]string, 0, len(st.Picks))
		for _, p := range st.Picks {
			picks = append(picks, fmt.Sprintf("%s (%d)", p.PlayerName, p.Points))
		}
		text := fmt.Sprintf("%d. %s %s: %d pts", st.Rank, medal(st.Rank), st.Name, st.Score)
		if len(picks) > 0 {
			text += "\n> " + strings.Join(picks, ", ")
		}
		blocks = append(blocks, plainSection(text))
	}

	return slack.NewBlockMessage(blocks...)
}

func formatPickAnnouncement(pick tournament.DraftBoardEntry) slack.Message {
	blocks := []slack.Block{header("📋 New draft pick")}

	text := fmt.Sprintf("%s drafted %s (%s)", pick.ParticipantName, pick.PlayerName, pick.PlayerSchool)
	if pick.DraftPosition != nil {
		text = fmt.Sprintf("Pick %d: %s", *pick.DraftPosition, text)
	}
	blocks = append(blocks, plainSection(text))

	if line := averagesLine(pick); line != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", line, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func averagesLine(pick tournament.DraftBoardEntry) string {
	var parts []string
	if pick.PlayerPosition != "" {
		parts = append(parts, pick.PlayerPosition)
	}
	for _, avg := range []struct {
		label string
		value *float64
	}{{"PPG", pick.PlayerPPG}, {"RPG", pick.PlayerRPG}, {"APG", pick.PlayerAPG}} {
		if avg.value != nil {
			parts = append(parts, fmt.Sprintf("%.1f %s", *avg.value, avg.label))
		}
	}
	return strings.Join(parts, " | ")
}

func formatDraftReset(removed int64) slack.Message {
	return slack.NewBlockMessage(
		header("🔄 Draft reset"),
		plainSection(fmt.Sprintf("All %d picks were cleared. Every player is available again.", removed)),
	)
}

func formatDraftBoard(entries []tournament.DraftBoardEntry) slack.Message {
	blocks := []slack.Block{header("📋 Draft Board")}

	if len(entries) == 0 {
		blocks = append(blocks, plainSection("No picks yet."))
		return slack.NewBlockMessage(blocks...)
	}

	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		pos := i + 1
		if e.DraftPosition != nil {
			pos = *e.DraftPosition
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s (%s)", pos, e.ParticipantName, e.PlayerName, e.PlayerSchool))
	}
	blocks = append(blocks, plainSection(strings.Join(lines, "\n")))
	return slack.NewBlockMessage(blocks...)
}
