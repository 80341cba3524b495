package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/source"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// New creates a new Reconciler for the given tournament year.
func New(src source.TournamentSource, players roster.RosterStore, gameStore games.GameStore, year int) *Reconciler {
	return &Reconciler{
		source:  src,
		players: players,
		games:   gameStore,
		year:    year,
	}
}

// RefreshTournament runs a full refresh: every team roster with season
// averages, then the game schedule, then stat lines of completed games. Each
// team roster is committed on its own. Eliminated teams are marked inactive.
func (r *Reconciler) RefreshTournament(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Job: JobTournament}
	log.Info("Starting tournament refresh", "year", r.year)

	teams, err := r.source.Teams(ctx, r.year, false)
	if err != nil {
		return res, fmt.Errorf("failed to fetch teams: %w", err)
	}
	res.Teams = len(teams)

	for _, team := range teams {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := r.refreshTeam(ctx, team, &res); err != nil {
			log.Error("Failed to refresh team roster", "team", team.Name, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("team %s: %v", team.Name, err))
		}
	}

	if err := r.refreshGames(ctx, false, &res); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	log.Info(res.Summary())
	return res, nil
}

// RefreshGameScores refetches the schedule bypassing any cache, updates
// scores and pulls stat lines of completed games.
func (r *Reconciler) RefreshGameScores(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Job: JobScores}
	log.Info("Starting game score refresh", "year", r.year)

	if err := r.refreshGames(ctx, true, &res); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	log.Info(res.Summary())
	return res, nil
}

// SeedIfEmpty runs a full refresh when no players are stored yet.
func (r *Reconciler) SeedIfEmpty(ctx context.Context) (bool, Result, error) {
	n, err := r.players.CountPlayers(ctx)
	if err != nil {
		return false, Result{}, fmt.Errorf("failed to count players: %w", err)
	}
	if n > 0 {
		log.Debug("Players already present, skipping initial seed", "players", n)
		return false, Result{}, nil
	}
	log.Info("No players found in database. Performing initial data refresh...")
	res, err := r.RefreshTournament(ctx)
	return true, res, err
}

func (r *Reconciler) refreshTeam(ctx context.Context, team source.Team, res *Result) error {
	players, err := r.source.Roster(ctx, team.Name, r.year, false)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}

	seed := team.Seed
	recs := make([]tournament.PlayerRecord, 0, len(players))
	for _, p := range players {
		rec := tournament.PlayerRecord{
			Name:         p.Name,
			School:       p.School,
			Position:     p.Position,
			JerseyNumber: p.JerseyNumber,
			YearInSchool: p.YearInSchool,
			Seed:         &seed,
			Region:       team.Region,
		}
		if rec.School == "" {
			rec.School = team.Name
		}

		avg, err := r.source.SeasonAverages(ctx, p.Name, team.Name, r.year, false)
		if err != nil {
			log.Warn("Failed to fetch season averages", "player", p.Name, "team", team.Name, "error", err)
		} else {
			rec.PPG, rec.RPG, rec.APG = &avg.PPG, &avg.RPG, &avg.APG
		}
		recs = append(recs, rec)
	}

	batch, err := r.players.UpsertPlayers(ctx, recs)
	if err != nil {
		return err
	}
	res.PlayersWritten += batch.Written
	res.Skipped = append(res.Skipped, batch.Skipped...)
	log.Debug("Refreshed team roster", "team", team.Name, "players", batch.Written)
	return nil
}

func (r *Reconciler) refreshGames(ctx context.Context, refresh bool, res *Result) error {
	recs, err := r.source.Games(ctx, r.year, refresh)
	if err != nil {
		return fmt.Errorf("failed to fetch games: %w", err)
	}
	batch, err := r.games.UpsertGames(ctx, recs)
	if err != nil {
		return fmt.Errorf("failed to store games: %w", err)
	}
	res.GamesWritten += batch.Written
	res.Skipped = append(res.Skipped, batch.Skipped...)

	var lines []tournament.StatLine
	for _, g := range recs {
		if g.Status != tournament.GameCompleted || g.Validate() != nil {
			continue
		}
		for _, team := range []string{g.Team1, g.Team2} {
			teamLines, err := r.gameLines(ctx, g, team)
			if err != nil {
				log.Error("Failed to fetch stat lines", "game", g.Key(), "team", team, "error", err)
				res.Errors = append(res.Errors, fmt.Sprintf("%s, %s: %v", g.Key(), team, err))
				continue
			}
			lines = append(lines, teamLines...)
		}
	}

	stats, err := r.games.UpsertPlayerGameStats(ctx, lines)
	res.StatsWritten += stats.Written
	res.Skipped = append(res.Skipped, stats.Skipped...)
	if err != nil {
		log.Error("Failed to store stat lines", "error", err)
		res.Errors = append(res.Errors, err.Error())
	}

	return r.markEliminated(ctx, res)
}

func (r *Reconciler) gameLines(ctx context.Context, g tournament.GameRecord, team string) ([]tournament.StatLine, error) {
	players, err := r.source.Roster(ctx, team, r.year, false)
	if err != nil {
		return nil, err
	}
	lines := make([]tournament.StatLine, 0, len(players))
	for _, p := range players {
		v, err := r.source.GameLine(ctx, p.Name, team, g.ExternalID, r.year, false)
		if err != nil {
			return nil, err
		}
		lines = append(lines, tournament.StatLine{
			PlayerName: p.Name,
			School:     team,
			GameID:     g.ExternalID,
			Team1:      g.Team1,
			Team2:      g.Team2,
			StatValues: v,
		})
	}
	return lines, nil
}

// markEliminated deactivates the players of every team that lost a
// completed game.
func (r *Reconciler) markEliminated(ctx context.Context, res *Result) error {
	stored, err := r.games.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	for _, g := range stored {
		loser := g.Loser()
		if loser == "" {
			continue
		}
		n, err := r.players.SetSchoolActive(ctx, loser, false)
		if err != nil {
			log.Error("Failed to mark team eliminated", "team", loser, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("eliminate %s: %v", loser, err))
			continue
		}
		if n > 0 {
			log.Info("Marked team eliminated", "team", loser, "players", n)
		}
		res.PlayersDeactivated += n
	}
	return nil
}
