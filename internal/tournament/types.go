package tournament

import (
	"strconv"
	"time"
)

// Player is a rostered tournament player. (Name, School) is its natural key.
type Player struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	School       string    `json:"school"`
	Position     string    `json:"position,omitempty"`
	JerseyNumber *int      `json:"jersey_number"`
	YearInSchool string    `json:"year_in_school,omitempty"`
	PPG          *float64  `json:"ppg"`
	RPG          *float64  `json:"rpg"`
	APG          *float64  `json:"apg"`
	Seed         *int      `json:"school_seed"`
	Region       string    `json:"region,omitempty"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerKey is the natural key of a player.
type PlayerKey struct {
	Name   string `json:"name"`
	School string `json:"school"`
}

// PlayerRecord is the set of updatable player fields. On upsert every field is
// written, nil included, except Active which keeps its stored value when nil.
type PlayerRecord struct {
	Name         string   `json:"name"`
	School       string   `json:"school"`
	Position     string   `json:"position,omitempty"`
	JerseyNumber *int     `json:"jersey_number,omitempty"`
	YearInSchool string   `json:"year_in_school,omitempty"`
	PPG          *float64 `json:"ppg,omitempty"`
	RPG          *float64 `json:"rpg,omitempty"`
	APG          *float64 `json:"apg,omitempty"`
	Seed         *int     `json:"school_seed,omitempty"`
	Region       string   `json:"region,omitempty"`
	Active       *bool    `json:"is_active,omitempty"`
}

// Key returns the natural key of the record.
func (r PlayerRecord) Key() PlayerKey {
	return PlayerKey{Name: r.Name, School: r.School}
}

// Participant is a person drafting players.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DraftPick links one participant to one player.
type DraftPick struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	PlayerID      int64     `json:"player_id"`
	DraftPosition *int      `json:"draft_position"`
	CreatedAt     time.Time `json:"created_at"`
}

// DraftBoardEntry is a pick joined with its participant and player.
type DraftBoardEntry struct {
	DraftPick
	ParticipantName string   `json:"participant_name"`
	PlayerName      string   `json:"player_name"`
	PlayerSchool    string   `json:"player_school"`
	PlayerPosition  string   `json:"player_position,omitempty"`
	PlayerPPG       *float64 `json:"player_ppg"`
	PlayerRPG       *float64 `json:"player_rpg"`
	PlayerAPG       *float64 `json:"player_apg"`
}

// GameStatus is the lifecycle state of a tournament game.
type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameCompleted  GameStatus = "completed"
)

// Valid reports whether s is a known status.
func (s GameStatus) Valid() bool {
	switch s {
	case GameScheduled, GameInProgress, GameCompleted:
		return true
	}
	return false
}

var roundNames = map[int]string{
	0: "First Four",
	1: "First Round",
	2: "Second Round",
	3: "Sweet 16",
	4: "Elite Eight",
	5: "Final Four",
	6: "Championship",
}

// RoundName returns the display name of a tournament round.
func RoundName(round int) string {
	if name, ok := roundNames[round]; ok {
		return name
	}
	return "Round " + strconv.Itoa(round)
}

// Game is a tournament game.
type Game struct {
	ID         int64      `json:"id"`
	ExternalID int64      `json:"game_id"`
	Round      int        `json:"round"`
	RoundName  string     `json:"round_name"`
	GameDate   string     `json:"game_date"`
	Team1      string     `json:"team1"`
	Team2      string     `json:"team2"`
	Team1Score *int       `json:"team1_score"`
	Team2Score *int       `json:"team2_score"`
	Status     GameStatus `json:"status"`
	Completed  bool       `json:"is_completed"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Loser returns the losing team of a completed game, or "" when undecided.
func (g Game) Loser() string {
	if !g.Completed || g.Team1Score == nil || g.Team2Score == nil || *g.Team1Score == *g.Team2Score {
		return ""
	}
	if *g.Team1Score < *g.Team2Score {
		return g.Team1
	}
	return g.Team2
}

// GameKey is the natural key of a game. ExternalID 0 means the source gave no id.
type GameKey struct {
	ExternalID int64  `json:"game_id"`
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
}

// GameRecord is the set of updatable game fields.
type GameRecord struct {
	ExternalID int64      `json:"game_id"`
	Round      int        `json:"round"`
	GameDate   string     `json:"game_date"`
	Team1      string     `json:"team1"`
	Team2      string     `json:"team2"`
	Team1Score *int       `json:"team1_score"`
	Team2Score *int       `json:"team2_score"`
	Status     GameStatus `json:"status"`
}

// Key returns the natural key of the record.
func (r GameRecord) Key() GameKey {
	return GameKey{ExternalID: r.ExternalID, Team1: r.Team1, Team2: r.Team2}
}

// StatValues are the box score numbers of one player in one game.
type StatValues struct {
	Points        int `json:"points"`
	Rebounds      int `json:"rebounds"`
	Assists       int `json:"assists"`
	Steals        int `json:"steals"`
	Blocks        int `json:"blocks"`
	Turnovers     int `json:"turnovers"`
	MinutesPlayed int `json:"minutes_played"`
}

// PlayerGameStat is a stored stat line.
type PlayerGameStat struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
	GameID   int64 `json:"game_id"`
	StatValues
	UpdatedAt time.Time `json:"updated_at"`
}

// StatLine is an incoming stat record that names its player and game by natural key.
type StatLine struct {
	PlayerName string `json:"player_name"`
	School     string `json:"school"`
	GameID     int64  `json:"game_id"`
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
	StatValues
}

// PlayerKey returns the natural key of the player the line belongs to.
func (l StatLine) PlayerKey() PlayerKey {
	return PlayerKey{Name: l.PlayerName, School: l.School}
}

// GameKey returns the natural key of the game the line belongs to.
func (l StatLine) GameKey() GameKey {
	return GameKey{ExternalID: l.GameID, Team1: l.Team1, Team2: l.Team2}
}

// PlayerLine is one player's stats inside a game breakdown.
type PlayerLine struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	StatValues
}

// GameBreakdown is a game together with the stat lines of both teams.
type GameBreakdown struct {
	Game
	Team1Players []PlayerLine `json:"team1_players"`
	Team2Players []PlayerLine `json:"team2_players"`
}

// SkippedRecord is a record a batch write did not persist.
type SkippedRecord struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// BatchResult summarizes a grouped write.
type BatchResult struct {
	Written int             `json:"written"`
	Skipped []SkippedRecord `json:"skipped,omitempty"`
}

// ScoredPick is a draft pick with the points its player has scored.
type ScoredPick struct {
	PickID        string `json:"pick_id"`
	PlayerID      int64  `json:"player_id"`
	PlayerName    string `json:"player_name"`
	PlayerSchool  string `json:"player_school"`
	DraftPosition *int   `json:"draft_position"`
	Points        int    `json:"points"`
}

// Standing is one row of the leaderboard.
type Standing struct {
	Rank          int          `json:"rank"`
	ParticipantID string       `json:"participant_id"`
	Name          string       `json:"name"`
	Score         int          `json:"score"`
	Picks         []ScoredPick `json:"draft_picks"`
}
