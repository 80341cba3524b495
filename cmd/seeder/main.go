package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/ingest"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/source"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

const picksPerParticipant = 3

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "bracket.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
		"TOURNAMENT_YEAR":   "2025",
		"SEED_PARTICIPANTS": "4",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

func mustInt(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil {
		log.Fatalf("Error: %s must be a number, got %q", key, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.")

	players := roster.New(db)
	reconciler := ingest.New(source.NewSample(time.Now), players, games.New(db), mustInt(cfg, "TOURNAMENT_YEAR"))

	startTime := time.Now()
	res, err := reconciler.RefreshTournament(ctx)
	if err != nil {
		log.Fatalf("Failed to load sample tournament: %s", err)
	}
	log.Info("Loaded sample tournament", "summary", res.Summary())

	picks, err := seedDraft(ctx, draft.New(db), players, mustInt(cfg, "SEED_PARTICIPANTS"))
	if err != nil {
		log.Fatalf("Failed to seed draft: %s", err)
	}
	log.Info("Successfully seeded the draft.", "picks", picks, "duration", time.Since(startTime))
}

// seedDraft creates demo participants and lets them snake-draft the
// highest-scoring undrafted players.
func seedDraft(ctx context.Context, store draft.DraftStore, players roster.RosterStore, participants int) (int, error) {
	created := make([]tournament.Participant, 0, participants)
	for i := 1; i <= participants; i++ {
		p, err := store.CreateParticipant(ctx, fmt.Sprintf("Seeder Participant %d", i), "")
		if err != nil {
			return 0, err
		}
		created = append(created, p)
	}

	pool, err := players.ListPlayers(ctx, roster.Filter{SortBy: roster.SortPPG, Order: roster.Desc})
	if err != nil {
		return 0, err
	}

	picks := 0
	next := 0
	for round := 0; round < picksPerParticipant; round++ {
		for i := range created {
			idx := i
			if round%2 == 1 {
				idx = len(created) - 1 - i
			}
			for next < len(pool) {
				player := pool[next]
				next++
				_, err := store.RecordPick(ctx, created[idx].ID, player.ID, nil)
				if errors.Is(err, tournament.ErrAlreadyDrafted) {
					continue
				}
				if err != nil {
					return picks, err
				}
				picks++
				break
			}
		}
	}
	return picks, nil
}
