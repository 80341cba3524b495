package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

const playerColumns = `id, name, school, position, jersey_number, year_in_school, ppg, rpg, apg, seed, region, is_active, created_at, updated_at`

const upsertPlayerSQL = `
	INSERT INTO players (name, school, position, jersey_number, year_in_school, ppg, rpg, apg, seed, region, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, 1), ?, ?)
	ON CONFLICT(name, school) DO UPDATE SET
		position = excluded.position,
		jersey_number = excluded.jersey_number,
		year_in_school = excluded.year_in_school,
		ppg = excluded.ppg,
		rpg = excluded.rpg,
		apg = excluded.apg,
		seed = excluded.seed,
		region = excluded.region,
		is_active = COALESCE(?, players.is_active),
		updated_at = excluded.updated_at
	RETURNING ` + playerColumns

// New creates a new RosterStore.
func New(db *sql.DB, opts ...Option) RosterStore {
	s := &store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertPlayer creates the player or overwrites every field of the existing
// player with the same name and school.
func (s *store) UpsertPlayer(ctx context.Context, rec tournament.PlayerRecord) (tournament.Player, error) {
	if err := rec.Validate(); err != nil {
		return tournament.Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tournament.Player{}, err
	}
	defer tx.Rollback()

	player, err := upsertPlayer(ctx, tx, rec, time.Now())
	if err != nil {
		return tournament.Player{}, err
	}
	if err := tx.Commit(); err != nil {
		return tournament.Player{}, err
	}
	return player, nil
}

// UpsertPlayers writes a group of records in one transaction. Invalid records
// are skipped and reported; a storage failure rolls back the whole group.
func (s *store) UpsertPlayers(ctx context.Context, recs []tournament.PlayerRecord) (tournament.BatchResult, error) {
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
			log.Warn("Skipping invalid player record", "player", rec.Key(), "error", err)
			result.Skipped = append(result.Skipped, tournament.SkippedRecord{Key: rec.Key().String(), Error: err.Error()})
			continue
		}
		if _, err := upsertPlayer(ctx, tx, rec, now); err != nil {
			return tournament.BatchResult{}, fmt.Errorf("failed to upsert player %s: %w", rec.Key(), err)
		}
		result.Written++
	}

	if err := tx.Commit(); err != nil {
		return tournament.BatchResult{}, err
	}
	return result, nil
}

func upsertPlayer(ctx context.Context, tx *sql.Tx, rec tournament.PlayerRecord, now time.Time) (tournament.Player, error) {
	var active sql.NullBool
	if rec.Active != nil {
		active = sql.NullBool{Bool: *rec.Active, Valid: true}
	}
	row := tx.QueryRowContext(ctx, upsertPlayerSQL,
		rec.Name, rec.School, database.NullString(rec.Position), database.NullInt(rec.JerseyNumber),
		database.NullString(rec.YearInSchool), database.NullFloat(rec.PPG), database.NullFloat(rec.RPG),
		database.NullFloat(rec.APG), database.NullInt(rec.Seed), database.NullString(rec.Region),
		active, now.Unix(), now.Unix(), active,
	)
	return scanPlayer(row)
}

// GetPlayer returns the player with the given id.
func (s *store) GetPlayer(ctx context.Context, id int64) (tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Player{}, fmt.Errorf("player %d: %w", id, tournament.ErrNotFound)
	}
	return player, err
}

// FindPlayer returns the player with the given natural key.
func (s *store) FindPlayer(ctx context.Context, key tournament.PlayerKey) (tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE name = ? AND school = ?`, key.Name, key.School)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Player{}, fmt.Errorf("player %s: %w", key, tournament.ErrNotFound)
	}
	return player, err
}

// ListPlayers returns the players matching f in the requested order.
func (s *store) ListPlayers(ctx context.Context, f Filter) ([]tournament.Player, error) {
	orderBy, err := s.orderBy(f)
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	for _, c := range []struct {
		column, value string
	}{
		{"position", f.Position},
		{"school", f.School},
		{"region", f.Region},
	} {
		if c.value == "" {
			continue
		}
		where = append(where, c.column+" = ?")
		args = append(args, c.value)
	}

	query := `SELECT ` + playerColumns + ` FROM players`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY ` + orderBy

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers(ctx, query, args...)
}

// orderBy builds the ORDER BY clause for f. Players without a value for a
// numeric key always sort last.
func (s *store) orderBy(f Filter) (string, error) {
	key := f.SortBy
	if key == "" {
		key = SortName
	}
	order := f.Order
	if order == "" {
		order = Asc
	}
	if order != Asc && order != Desc {
		return "", fmt.Errorf("%w: unknown sort order %q", tournament.ErrValidation, f.Order)
	}

	dir := "ASC"
	if order == Desc {
		dir = "DESC"
	}

	switch key {
	case SortName:
		return "name " + dir + ", id", nil
	case SortPPG, SortRPG, SortAPG:
		if s.legacyNumericOrder {
			if dir == "ASC" {
				dir = "DESC"
			} else {
				dir = "ASC"
			}
		}
		return fmt.Sprintf("%s IS NULL, %s %s, id", key, key, dir), nil
	case SortSeed:
		return "seed IS NULL, seed " + dir + ", id", nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", tournament.ErrValidation, f.SortBy)
	}
}

// ListFilterOptions returns the distinct non-empty positions, schools and regions.
func (s *store) ListFilterOptions(ctx context.Context) (FilterOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opts FilterOptions
	var err error
	if opts.Positions, err = s.distinct(ctx, "position"); err != nil {
		return FilterOptions{}, err
	}
	if opts.Schools, err = s.distinct(ctx, "school"); err != nil {
		return FilterOptions{}, err
	}
	if opts.Regions, err = s.distinct(ctx, "region"); err != nil {
		return FilterOptions{}, err
	}
	return opts, nil
}

func (s *store) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT `+column+` FROM players WHERE `+column+` IS NOT NULL AND `+column+` != '' ORDER BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Availability splits all players into drafted and undrafted, in id order.
func (s *store) Availability(ctx context.Context) (Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.queryPlayers(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return Availability{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT player_id FROM draft_picks`)
	if err != nil {
		return Availability{}, err
	}
	drafted := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return Availability{}, err
		}
		drafted[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Availability{}, err
	}

	a := Availability{
		Drafted:   []tournament.Player{},
		Undrafted: []tournament.Player{},
		All:       all,
	}
	for _, p := range all {
		if drafted[p.ID] {
			a.Drafted = append(a.Drafted, p)
		} else {
			a.Undrafted = append(a.Undrafted, p)
		}
	}
	return a, nil
}

// CountPlayers returns the number of stored players.
func (s *store) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n)
	return n, err
}

// SetSchoolActive flips the active flag of every player of a school and
// returns how many players changed.
func (s *store) SetSchoolActive(ctx context.Context, school string, active bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET is_active = ?, updated_at = ? WHERE school = ? AND is_active != ?`,
		active, time.Now().Unix(), school, active)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *store) queryPlayers(ctx context.Context, query string, args ...any) ([]tournament.Player, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []tournament.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (tournament.Player, error) {
	var (
		p                      tournament.Player
		position, year, region sql.NullString
		jersey, seed           sql.NullInt64
		ppg, rpg, apg          sql.NullFloat64
		createdAt, updatedAt   int64
	)
	err := scanner.Scan(
		&p.ID, &p.Name, &p.School, &position, &jersey, &year,
		&ppg, &rpg, &apg, &seed, &region, &p.Active, &createdAt, &updatedAt,
	)
	if err != nil {
		return tournament.Player{}, err
	}
	p.Position = position.String
	p.YearInSchool = year.String
	p.Region = region.String
	p.JerseyNumber = database.IntPtr(jersey)
	p.Seed = database.IntPtr(seed)
	p.PPG = database.FloatPtr(ppg)
	p.RPG = database.FloatPtr(rpg)
	p.APG = database.FloatPtr(apg)
	p.CreatedAt = database.Unix(createdAt)
	p.UpdatedAt = database.Unix(updatedAt)
	return p, nil
}
