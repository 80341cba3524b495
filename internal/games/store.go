package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

const gameColumns = `id, external_id, round, game_date, team1, team2, team1_score, team2_score, status, created_at, updated_at`

const upsertGameSQL = `
	INSERT INTO games (external_id, round, game_date, team1, team2, team1_score, team2_score, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(external_id, team1, team2) DO UPDATE SET
		round = excluded.round,
		game_date = excluded.game_date,
		team1_score = excluded.team1_score,
		team2_score = excluded.team2_score,
		status = excluded.status,
		updated_at = excluded.updated_at
	RETURNING ` + gameColumns

const updateGameSQL = `
	UPDATE games SET
		round = ?,
		game_date = ?,
		team1_score = ?,
		team2_score = ?,
		status = ?,
		updated_at = ?
	WHERE id = ?
	RETURNING ` + gameColumns

// adoptGameSQL gives an id-less game between the same teams the incoming
// external id, unless a game with that id is already stored.
const adoptGameSQL = `
	UPDATE games SET external_id = ?
	WHERE id = (
		SELECT id FROM games WHERE external_id = 0 AND team1 = ? AND team2 = ?
		ORDER BY id DESC LIMIT 1
	)
	AND NOT EXISTS (SELECT 1 FROM games WHERE external_id = ? AND team1 = ? AND team2 = ?)`

const statColumns = `id, player_id, game_id, points, rebounds, assists, steals, blocks, turnovers, minutes_played, updated_at`

const upsertStatSQL = `
	INSERT INTO player_game_stats (player_id, game_id, points, rebounds, assists, steals, blocks, turnovers, minutes_played, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(player_id, game_id) DO UPDATE SET
		points = excluded.points,
		rebounds = excluded.rebounds,
		assists = excluded.assists,
		steals = excluded.steals,
		blocks = excluded.blocks,
		turnovers = excluded.turnovers,
		minutes_played = excluded.minutes_played,
		updated_at = excluded.updated_at
	RETURNING ` + statColumns

// New creates a new GameStore.
func New(db *sql.DB) GameStore {
	return &store{db: db}
}

// UpsertGame creates the game or overwrites the existing game with the same key.
func (s *store) UpsertGame(ctx context.Context, rec tournament.GameRecord) (tournament.Game, error) {
	if err := rec.Validate(); err != nil {
		return tournament.Game{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tournament.Game{}, err
	}
	defer tx.Rollback()

	game, err := upsertGame(ctx, tx, rec, time.Now())
	if err != nil {
		return tournament.Game{}, err
	}
	if err := tx.Commit(); err != nil {
		return tournament.Game{}, err
	}
	return game, nil
}

// UpsertGames writes a schedule in one transaction, skipping invalid records.
func (s *store) UpsertGames(ctx context.Context, recs []tournament.GameRecord) (tournament.BatchResult, error) {
	var result tournament.BatchResult
	if len(recs) == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			log.Warn("Skipping invalid game record", "game", rec.Key(), "error", err)
			result.Skipped = append(result.Skipped, tournament.SkippedRecord{Key: rec.Key().String(), Error: err.Error()})
			continue
		}
		if _, err := upsertGame(ctx, tx, rec, now); err != nil {
			return tournament.BatchResult{}, fmt.Errorf("failed to upsert %s: %w", rec.Key(), err)
		}
		result.Written++
	}

	if err := tx.Commit(); err != nil {
		return tournament.BatchResult{}, err
	}
	return result, nil
}

func upsertGame(ctx context.Context, tx *sql.Tx, rec tournament.GameRecord, now time.Time) (tournament.Game, error) {
	status := rec.Status
	if status == "" {
		status = tournament.GameScheduled
	}
	// Without an external id the key is the two teams, whatever id the stored game has.
	if rec.ExternalID == 0 {
		id, err := resolveGame(ctx, tx, rec.Key())
		switch {
		case err == nil:
			return scanGame(tx.QueryRowContext(ctx, updateGameSQL,
				rec.Round, rec.GameDate,
				database.NullInt(rec.Team1Score), database.NullInt(rec.Team2Score), status,
				now.Unix(), id,
			))
		case !errors.Is(err, tournament.ErrNotFound):
			return tournament.Game{}, err
		}
	} else if _, err := tx.ExecContext(ctx, adoptGameSQL,
		rec.ExternalID, rec.Team1, rec.Team2,
		rec.ExternalID, rec.Team1, rec.Team2,
	); err != nil {
		return tournament.Game{}, err
	}
	row := tx.QueryRowContext(ctx, upsertGameSQL,
		rec.ExternalID, rec.Round, rec.GameDate, rec.Team1, rec.Team2,
		database.NullInt(rec.Team1Score), database.NullInt(rec.Team2Score), status,
		now.Unix(), now.Unix(),
	)
	return scanGame(row)
}

// GetGame returns the game with the given id.
func (s *store) GetGame(ctx context.Context, id int64) (tournament.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGame(ctx, id)
}

func (s *store) getGame(ctx context.Context, id int64) (tournament.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Game{}, fmt.Errorf("game %d: %w", id, tournament.ErrNotFound)
	}
	return game, err
}

// FindGame returns the game with the given natural key.
func (s *store) FindGame(ctx context.Context, key tournament.GameKey) (tournament.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := resolveGame(ctx, s.db, key)
	if err != nil {
		return tournament.Game{}, err
	}
	return s.getGame(ctx, id)
}

// ListGames returns all games by date, then round.
func (s *store) ListGames(ctx context.Context) ([]tournament.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY game_date, round, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []tournament.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// UpsertPlayerGameStat writes one stat line. It fails with
// tournament.ErrReferenceNotFound when its player or game is not stored.
func (s *store) UpsertPlayerGameStat(ctx context.Context, line tournament.StatLine) (tournament.PlayerGameStat, error) {
	if err := line.Validate(); err != nil {
		return tournament.PlayerGameStat{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tournament.PlayerGameStat{}, err
	}
	defer tx.Rollback()

	stat, err := upsertStat(ctx, tx, line, time.Now())
	if err != nil {
		return tournament.PlayerGameStat{}, err
	}
	if err := tx.Commit(); err != nil {
		return tournament.PlayerGameStat{}, err
	}
	return stat, nil
}

// UpsertPlayerGameStats writes stat lines one game at a time, each game in its
// own transaction. Lines with a missing player or game are skipped. A storage
// failure aborts the remaining games but keeps the ones already committed.
func (s *store) UpsertPlayerGameStats(ctx context.Context, lines []tournament.StatLine) (tournament.BatchResult, error) {
	var result tournament.BatchResult

	var order []tournament.GameKey
	groups := make(map[tournament.GameKey][]tournament.StatLine)
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			result.Skipped = append(result.Skipped, tournament.SkippedRecord{Key: line.PlayerKey().String(), Error: err.Error()})
			continue
		}
		key := line.GameKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], line)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range order {
		written, skipped, err := s.upsertStatGroup(ctx, groups[key])
		if err != nil {
			return result, fmt.Errorf("failed to write stats for %s: %w", key, err)
		}
		result.Written += written
		result.Skipped = append(result.Skipped, skipped...)
	}
	return result, nil
}

func (s *store) upsertStatGroup(ctx context.Context, lines []tournament.StatLine) (int, []tournament.SkippedRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer tx.Rollback()

	var written int
	var skipped []tournament.SkippedRecord
	now := time.Now()
	for _, line := range lines {
		if _, err := upsertStat(ctx, tx, line, now); err != nil {
			if errors.Is(err, tournament.ErrReferenceNotFound) {
				log.Warn("Skipping stat line", "player", line.PlayerKey(), "game", line.GameKey(), "error", err)
				skipped = append(skipped, tournament.SkippedRecord{Key: line.PlayerKey().String(), Error: err.Error()})
				continue
			}
			return 0, nil, err
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return written, skipped, nil
}

func upsertStat(ctx context.Context, tx *sql.Tx, line tournament.StatLine, now time.Time) (tournament.PlayerGameStat, error) {
	var playerID int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ? AND school = ?`, line.PlayerName, line.School).Scan(&playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.PlayerGameStat{}, fmt.Errorf("%w: player %s", tournament.ErrReferenceNotFound, line.PlayerKey())
	}
	if err != nil {
		return tournament.PlayerGameStat{}, err
	}

	gameID, err := resolveGame(ctx, tx, line.GameKey())
	if errors.Is(err, tournament.ErrNotFound) {
		return tournament.PlayerGameStat{}, fmt.Errorf("%w: %s", tournament.ErrReferenceNotFound, line.GameKey())
	}
	if err != nil {
		return tournament.PlayerGameStat{}, err
	}

	v := line.StatValues
	row := tx.QueryRowContext(ctx, upsertStatSQL,
		playerID, gameID, v.Points, v.Rebounds, v.Assists, v.Steals, v.Blocks, v.Turnovers, v.MinutesPlayed,
		now.Unix(), now.Unix(),
	)
	return scanStat(row)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolveGame maps a natural key to a game id. Without an external id the
// most recently created game between the two teams wins.
func resolveGame(ctx context.Context, q queryer, key tournament.GameKey) (int64, error) {
	var id int64
	var err error
	if key.ExternalID != 0 {
		err = q.QueryRowContext(ctx,
			`SELECT id FROM games WHERE external_id = ? AND team1 = ? AND team2 = ?`,
			key.ExternalID, key.Team1, key.Team2).Scan(&id)
	} else {
		err = q.QueryRowContext(ctx,
			`SELECT id FROM games WHERE team1 = ? AND team2 = ? ORDER BY id DESC LIMIT 1`,
			key.Team1, key.Team2).Scan(&id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", key, tournament.ErrNotFound)
	}
	return id, err
}

// GameBreakdown returns a game with its stat lines split by team.
func (s *store) GameBreakdown(ctx context.Context, id int64) (tournament.GameBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return tournament.GameBreakdown{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.school, s.points, s.rebounds, s.assists, s.steals, s.blocks, s.turnovers, s.minutes_played
		FROM player_game_stats s
		JOIN players p ON p.id = s.player_id
		WHERE s.game_id = ?
		ORDER BY s.points DESC, p.name
	`, id)
	if err != nil {
		return tournament.GameBreakdown{}, err
	}
	defer rows.Close()

	b := tournament.GameBreakdown{
		Game:         game,
		Team1Players: []tournament.PlayerLine{},
		Team2Players: []tournament.PlayerLine{},
	}
	for rows.Next() {
		var line tournament.PlayerLine
		var school string
		v := &line.StatValues
		if err := rows.Scan(&line.PlayerID, &line.Name, &school,
			&v.Points, &v.Rebounds, &v.Assists, &v.Steals, &v.Blocks, &v.Turnovers, &v.MinutesPlayed); err != nil {
			return tournament.GameBreakdown{}, err
		}
		switch school {
		case game.Team1:
			b.Team1Players = append(b.Team1Players, line)
		case game.Team2:
			b.Team2Players = append(b.Team2Players, line)
		default:
			log.Warn("Stat line for a player outside both teams", "gameID", id, "playerID", line.PlayerID, "school", school)
		}
	}
	return b, rows.Err()
}

func scanGame(scanner interface{ Scan(...any) error }) (tournament.Game, error) {
	var (
		g                    tournament.Game
		score1, score2       sql.NullInt64
		createdAt, updatedAt int64
	)
	err := scanner.Scan(&g.ID, &g.ExternalID, &g.Round, &g.GameDate, &g.Team1, &g.Team2,
		&score1, &score2, &g.Status, &createdAt, &updatedAt)
	if err != nil {
		return tournament.Game{}, err
	}
	g.Team1Score = database.IntPtr(score1)
	g.Team2Score = database.IntPtr(score2)
	g.RoundName = tournament.RoundName(g.Round)
	g.Completed = g.Status == tournament.GameCompleted
	g.CreatedAt = database.Unix(createdAt)
	g.UpdatedAt = database.Unix(updatedAt)
	return g, nil
}

func scanStat(scanner interface{ Scan(...any) error }) (tournament.PlayerGameStat, error) {
	var st tournament.PlayerGameStat
	var updatedAt int64
	v := &st.StatValues
	err := scanner.Scan(&st.ID, &st.PlayerID, &st.GameID,
		&v.Points, &v.Rebounds, &v.Assists, &v.Steals, &v.Blocks, &v.Turnovers, &v.MinutesPlayed, &updatedAt)
	if err != nil {
		return tournament.PlayerGameStat{}, err
	}
	st.UpdatedAt = database.Unix(updatedAt)
	return st, nil
}
