// Package leaderboard scores participants by the points their drafted players
// have scored. Scores are computed on every call.
package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// Aggregator computes participant scores.
type Aggregator interface {
	Score(ctx context.Context, participantID string) (int, error)
	Leaderboard(ctx context.Context) ([]tournament.Standing, error)
}

type aggregator struct {
	db *sql.DB
}

// New creates a new Aggregator.
func New(db *sql.DB) Aggregator {
	return &aggregator{db: db}
}

// Score returns the sum of points over every stat line of every player the
// participant drafted.
func (a *aggregator) Score(ctx context.Context, participantID string) (int, error) {
	var one int
	err := a.db.QueryRowContext(ctx, `SELECT 1 FROM participants WHERE id = ?`, participantID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("participant %s: %w", participantID, tournament.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	var score int
	err = a.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(s.points), 0)
		FROM draft_picks d
		JOIN player_game_stats s ON s.player_id = d.player_id
		WHERE d.participant_id = ?
	`, participantID).Scan(&score)
	return score, err
}

// Leaderboard ranks every participant by score, highest first. Equal scores
// share a rank and keep creation order.
func (a *aggregator) Leaderboard(ctx context.Context) ([]tournament.Standing, error) {
	standings, index, err := a.participants(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT d.participant_id, d.id, d.player_id, p.name, p.school, d.draft_position,
			COALESCE((SELECT SUM(s.points) FROM player_game_stats s WHERE s.player_id = d.player_id), 0)
		FROM draft_picks d
		JOIN players p ON p.id = d.player_id
		ORDER BY d.draft_position IS NULL, d.draft_position, d.created_at, d.rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var participantID string
		var pick tournament.ScoredPick
		var pos sql.NullInt64
		if err := rows.Scan(&participantID, &pick.PickID, &pick.PlayerID, &pick.PlayerName, &pick.PlayerSchool, &pos, &pick.Points); err != nil {
			return nil, err
		}
		pick.DraftPosition = database.IntPtr(pos)
		i, ok := index[participantID]
		if !ok {
			continue
		}
		standings[i].Picks = append(standings[i].Picks, pick)
		standings[i].Score += pick.Points
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	Rank(standings)
	return standings, nil
}

func (a *aggregator) participants(ctx context.Context) ([]tournament.Standing, map[string]int, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT id, name FROM participants ORDER BY created_at, rowid`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	standings := []tournament.Standing{}
	index := make(map[string]int)
	for rows.Next() {
		s := tournament.Standing{Picks: []tournament.ScoredPick{}}
		if err := rows.Scan(&s.ParticipantID, &s.Name); err != nil {
			return nil, nil, err
		}
		index[s.ParticipantID] = len(standings)
		standings = append(standings, s)
	}
	return standings, index, rows.Err()
}

// Rank sorts standings by descending score, keeping the input order for
// ties, and assigns competition ranks (1, 2, 2, 4).
func Rank(standings []tournament.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	for i := range standings {
		if i > 0 && standings[i].Score == standings[i-1].Score {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
}
