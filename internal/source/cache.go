package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/mauv0809/bracket-draft/internal/tournament"
	"github.com/vmihailenco/msgpack/v5"
)

// Cached stores every answer of the wrapped source as a msgpack snapshot in
// dir and serves later requests from it unless refresh is set.
type Cached struct {
	next TournamentSource
	dir  string
}

var _ TournamentSource = (*Cached)(nil)

// NewCached wraps next with a snapshot cache rooted at dir.
func NewCached(next TournamentSource, dir string) (*Cached, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &Cached{next: next, dir: dir}, nil
}

func (c *Cached) Teams(ctx context.Context, year int, refresh bool) ([]Team, error) {
	return cached(c, fmt.Sprintf("tournament_teams_%d", year), refresh, func() ([]Team, error) {
		return c.next.Teams(ctx, year, refresh)
	})
}

func (c *Cached) Roster(ctx context.Context, team string, year int, refresh bool) ([]RosterPlayer, error) {
	return cached(c, fmt.Sprintf("team_players_%s_%d", slug.Make(team), year), refresh, func() ([]RosterPlayer, error) {
		return c.next.Roster(ctx, team, year, refresh)
	})
}

func (c *Cached) SeasonAverages(ctx context.Context, player, team string, year int, refresh bool) (Averages, error) {
	name := fmt.Sprintf("player_stats_%s_%s_%d", slug.Make(player), slug.Make(team), year)
	return cached(c, name, refresh, func() (Averages, error) {
		return c.next.SeasonAverages(ctx, player, team, year, refresh)
	})
}

func (c *Cached) Games(ctx context.Context, year int, refresh bool) ([]tournament.GameRecord, error) {
	return cached(c, fmt.Sprintf("tournament_games_%d", year), refresh, func() ([]tournament.GameRecord, error) {
		return c.next.Games(ctx, year, refresh)
	})
}

func (c *Cached) GameLine(ctx context.Context, player, team string, gameID int64, year int, refresh bool) (tournament.StatValues, error) {
	name := fmt.Sprintf("player_game_stats_%s_%s_game%d_%d", slug.Make(player), slug.Make(team), gameID, year)
	return cached(c, name, refresh, func() (tournament.StatValues, error) {
		return c.next.GameLine(ctx, player, team, gameID, year, refresh)
	})
}

func cached[T any](c *Cached, name string, refresh bool, fetch func() (T, error)) (T, error) {
	path := filepath.Join(c.dir, name+".msgpack")
	if !refresh {
		var v T
		err := load(path, &v)
		if err == nil {
			log.Debug("Using cached snapshot", "file", path)
			return v, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Ignoring unreadable snapshot", "file", path, "error", err)
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	if err := save(path, v); err != nil {
		log.Error("Failed to write snapshot", "file", path, "error", err)
	}
	return v, nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	dec.DisallowUnknownFields(true)
	return dec.Decode(v)
}

func save(path string, v any) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
