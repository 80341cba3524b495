package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// Sample serves a fixed bracket with generated numbers. The same inputs
// always produce the same numbers.
type Sample struct {
	now func() time.Time
}

// NewSample creates a Sample. now defaults to time.Now and dates the games.
func NewSample(now func() time.Time) *Sample {
	if now == nil {
		now = time.Now
	}
	return &Sample{now: now}
}

var _ TournamentSource = (*Sample)(nil)

var sampleTeams = []Team{
	{Name: "Gonzaga", Seed: 1, Region: "West"},
	{Name: "Baylor", Seed: 1, Region: "South"},
	{Name: "Illinois", Seed: 1, Region: "Midwest"},
	{Name: "Michigan", Seed: 1, Region: "East"},
	{Name: "Iowa", Seed: 2, Region: "West"},
	{Name: "Ohio State", Seed: 2, Region: "South"},
	{Name: "Houston", Seed: 2, Region: "Midwest"},
	{Name: "Alabama", Seed: 2, Region: "East"},
}

func jersey(n int) *int { return &n }

var sampleRosters = map[string][]RosterPlayer{
	"Gonzaga": {
		{Name: "Drew Timme", School: "Gonzaga", Position: "F", JerseyNumber: jersey(2), YearInSchool: "Junior"},
		{Name: "Jalen Suggs", School: "Gonzaga", Position: "G", JerseyNumber: jersey(1), YearInSchool: "Freshman"},
		{Name: "Corey Kispert", School: "Gonzaga", Position: "F", JerseyNumber: jersey(24), YearInSchool: "Senior"},
	},
	"Baylor": {
		{Name: "Jared Butler", School: "Baylor", Position: "G", JerseyNumber: jersey(12), YearInSchool: "Junior"},
		{Name: "Davion Mitchell", School: "Baylor", Position: "G", JerseyNumber: jersey(45), YearInSchool: "Junior"},
		{Name: "MaCio Teague", School: "Baylor", Position: "G", JerseyNumber: jersey(31), YearInSchool: "Senior"},
	},
}

func (s *Sample) Teams(ctx context.Context, year int, _ bool) ([]Team, error) {
	log.Debug("Serving sample tournament teams", "year", year)
	return append([]Team(nil), sampleTeams...), nil
}

// Roster returns the named roster for known teams and three generic players
// for everyone else.
func (s *Sample) Roster(ctx context.Context, team string, year int, _ bool) ([]RosterPlayer, error) {
	if players, ok := sampleRosters[team]; ok {
		return append([]RosterPlayer(nil), players...), nil
	}
	return []RosterPlayer{
		{Name: fmt.Sprintf("Player 1 (%s)", team), School: team, Position: "G", JerseyNumber: jersey(1), YearInSchool: "Freshman"},
		{Name: fmt.Sprintf("Player 2 (%s)", team), School: team, Position: "F", JerseyNumber: jersey(2), YearInSchool: "Sophomore"},
		{Name: fmt.Sprintf("Player 3 (%s)", team), School: team, Position: "C", JerseyNumber: jersey(3), YearInSchool: "Junior"},
	}, nil
}

func (s *Sample) SeasonAverages(ctx context.Context, player, team string, year int, _ bool) (Averages, error) {
	r := newDraw(player, team, year)
	return Averages{
		PPG: r.tenth(5.0, 25.0),
		RPG: r.tenth(1.0, 12.0),
		APG: r.tenth(0.5, 8.0),
	}, nil
}

// Games returns two completed first-round games played today and one
// scheduled for tomorrow.
func (s *Sample) Games(ctx context.Context, year int, _ bool) ([]tournament.GameRecord, error) {
	today := s.now().Format(tournament.DateLayout)
	tomorrow := s.now().AddDate(0, 0, 1).Format(tournament.DateLayout)
	score := func(n int) *int { return &n }
	return []tournament.GameRecord{
		{ExternalID: 1, Round: 1, GameDate: today, Team1: "Gonzaga", Team2: "Norfolk State", Team1Score: score(98), Team2Score: score(55), Status: tournament.GameCompleted},
		{ExternalID: 2, Round: 1, GameDate: today, Team1: "Baylor", Team2: "Hartford", Team1Score: score(79), Team2Score: score(55), Status: tournament.GameCompleted},
		{ExternalID: 3, Round: 1, GameDate: tomorrow, Team1: "Michigan", Team2: "Texas Southern", Status: tournament.GameScheduled},
	}, nil
}

func (s *Sample) GameLine(ctx context.Context, player, team string, gameID int64, year int, _ bool) (tournament.StatValues, error) {
	r := newDraw(player, team, gameID, year)
	return tournament.StatValues{
		Points:        r.intn(0, 30),
		Rebounds:      r.intn(0, 15),
		Assists:       r.intn(0, 10),
		Steals:        r.intn(0, 5),
		Blocks:        r.intn(0, 5),
		Turnovers:     r.intn(0, 5),
		MinutesPlayed: r.intn(10, 40),
	}, nil
}

// draw is a random stream seeded from its inputs.
type draw struct {
	r *rand.Rand
}

func newDraw(parts ...any) draw {
	h := fnv.New64a()
	for _, p := range parts {
		fmt.Fprintf(h, "%v|", p)
	}
	seed := h.Sum64()
	return draw{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// intn returns a value in [lo, hi].
func (d draw) intn(lo, hi int) int {
	return lo + d.r.IntN(hi-lo+1)
}

// tenth returns a value in [lo, hi] rounded to one decimal.
func (d draw) tenth(lo, hi float64) float64 {
	return math.Round((lo+d.r.Float64()*(hi-lo))*10) / 10
}
