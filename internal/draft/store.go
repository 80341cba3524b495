package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

const boardQuery = `
	SELECT d.id, d.participant_id, d.player_id, d.draft_position, d.created_at,
		pa.name, p.name, p.school, p.position, p.ppg, p.rpg, p.apg
	FROM draft_picks d
	JOIN participants pa ON pa.id = d.participant_id
	JOIN players p ON p.id = d.player_id
`

// New creates a new DraftStore.
func New(db *sql.DB) DraftStore {
	return &store{db: db, now: time.Now}
}

// CreateParticipant stores a new participant with a generated id.
func (s *store) CreateParticipant(ctx context.Context, name, email string) (tournament.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return tournament.Participant{}, fmt.Errorf("%w: participant name is required", tournament.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := tournament.Participant{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		CreatedAt: database.Unix(s.now().Unix()),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, database.NullString(p.Email), p.CreatedAt.Unix())
	if err != nil {
		return tournament.Participant{}, err
	}
	return p, nil
}

// GetParticipant returns the participant with the given id.
func (s *store) GetParticipant(ctx context.Context, id string) (tournament.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, name, email, created_at FROM participants WHERE id = ?`, id)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Participant{}, fmt.Errorf("participant %s: %w", id, tournament.ErrNotFound)
	}
	return p, err
}

// ListParticipants returns all participants in creation order.
func (s *store) ListParticipants(ctx context.Context) ([]tournament.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, created_at FROM participants ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []tournament.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// RemoveParticipant deletes the participant's picks and then the participant.
func (s *store) RemoveParticipant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	picks, err := tx.ExecContext(ctx, `DELETE FROM draft_picks WHERE participant_id = ?`, id)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("participant %s: %w", id, tournament.ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	removed, _ := picks.RowsAffected()
	log.Info("Removed participant", "participantID", id, "picks", removed)
	return nil
}

// RecordPick assigns a player to a participant. A player can be picked once;
// a second attempt fails with tournament.ErrAlreadyDrafted. When position is
// nil the pick gets the next free ordinal.
func (s *store) RecordPick(ctx context.Context, participantID string, playerID int64, position *int) (tournament.DraftPick, error) {
	if participantID == "" || playerID <= 0 {
		return tournament.DraftPick{}, fmt.Errorf("%w: participant_id and player_id are required", tournament.ErrValidation)
	}
	if position != nil && *position < 1 {
		return tournament.DraftPick{}, fmt.Errorf("%w: draft_position must be positive", tournament.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tournament.DraftPick{}, err
	}
	defer tx.Rollback()

	if err := exists(ctx, tx, `SELECT 1 FROM participants WHERE id = ?`, participantID); err != nil {
		return tournament.DraftPick{}, fmt.Errorf("participant %s: %w", participantID, err)
	}
	if err := exists(ctx, tx, `SELECT 1 FROM players WHERE id = ?`, playerID); err != nil {
		return tournament.DraftPick{}, fmt.Errorf("player %d: %w", playerID, err)
	}

	var owner string
	err = tx.QueryRowContext(ctx, `SELECT participant_id FROM draft_picks WHERE player_id = ?`, playerID).Scan(&owner)
	switch {
	case err == nil:
		return tournament.DraftPick{}, fmt.Errorf("player %d: %w", playerID, tournament.ErrAlreadyDrafted)
	case !errors.Is(err, sql.ErrNoRows):
		return tournament.DraftPick{}, err
	}

	if position == nil {
		var next int
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(draft_position), 0) + 1 FROM draft_picks`).Scan(&next); err != nil {
			return tournament.DraftPick{}, err
		}
		position = &next
	}

	pick := tournament.DraftPick{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		PlayerID:      playerID,
		DraftPosition: position,
		CreatedAt:     database.Unix(s.now().Unix()),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO draft_picks (id, participant_id, player_id, draft_position, created_at) VALUES (?, ?, ?, ?, ?)`,
		pick.ID, pick.ParticipantID, pick.PlayerID, database.NullInt(pick.DraftPosition), pick.CreatedAt.Unix())
	if database.IsUniqueViolation(err) {
		return tournament.DraftPick{}, fmt.Errorf("player %d: %w", playerID, tournament.ErrAlreadyDrafted)
	}
	if err != nil {
		return tournament.DraftPick{}, err
	}
	if err := tx.Commit(); err != nil {
		if database.IsUniqueViolation(err) {
			return tournament.DraftPick{}, fmt.Errorf("player %d: %w", playerID, tournament.ErrAlreadyDrafted)
		}
		return tournament.DraftPick{}, err
	}
	return pick, nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, arg any) error {
	var one int
	err := tx.QueryRowContext(ctx, query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.ErrNotFound
	}
	return err
}

// DeletePick removes a single pick.
func (s *store) DeletePick(ctx context.Context, pickID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM draft_picks WHERE id = ?`, pickID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("draft pick %s: %w", pickID, tournament.ErrNotFound)
	}
	return nil
}

// ResetAllPicks removes every pick and returns how many were removed.
func (s *store) ResetAllPicks(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM draft_picks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListPicks returns all picks in the order they were made.
func (s *store) ListPicks(ctx context.Context) ([]tournament.DraftBoardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryBoard(ctx, boardQuery+` ORDER BY d.created_at, d.rowid`)
}

// DraftBoard returns all picks by draft position. Picks without a position
// come last, in the order they were made.
func (s *store) DraftBoard(ctx context.Context) ([]tournament.DraftBoardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryBoard(ctx, boardQuery+` ORDER BY d.draft_position IS NULL, d.draft_position, d.created_at, d.rowid`)
}

// GetPick returns one pick joined with its participant and player.
func (s *store) GetPick(ctx context.Context, pickID string) (tournament.DraftBoardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := s.queryBoard(ctx, boardQuery+` WHERE d.id = ?`, pickID)
	if err != nil {
		return tournament.DraftBoardEntry{}, err
	}
	if len(entries) == 0 {
		return tournament.DraftBoardEntry{}, fmt.Errorf("draft pick %s: %w", pickID, tournament.ErrNotFound)
	}
	return entries[0], nil
}

func (s *store) queryBoard(ctx context.Context, query string, args ...any) ([]tournament.DraftBoardEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []tournament.DraftBoardEntry{}
	for rows.Next() {
		var (
			e             tournament.DraftBoardEntry
			pos           sql.NullInt64
			createdAt     int64
			playerPos     sql.NullString
			ppg, rpg, apg sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.ParticipantID, &e.PlayerID, &pos, &createdAt,
			&e.ParticipantName, &e.PlayerName, &e.PlayerSchool, &playerPos, &ppg, &rpg, &apg); err != nil {
			return nil, err
		}
		e.DraftPosition = database.IntPtr(pos)
		e.CreatedAt = database.Unix(createdAt)
		e.PlayerPosition = playerPos.String
		e.PlayerPPG = database.FloatPtr(ppg)
		e.PlayerRPG = database.FloatPtr(rpg)
		e.PlayerAPG = database.FloatPtr(apg)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanParticipant(scanner interface{ Scan(...any) error }) (tournament.Participant, error) {
	var p tournament.Participant
	var email sql.NullString
	var createdAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &email, &createdAt); err != nil {
		return tournament.Participant{}, err
	}
	p.Email = email.String
	p.CreatedAt = database.Unix(createdAt)
	return p, nil
}
