package source

// Team is a tournament field entry.
type Team struct {
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
	Region string `json:"region"`
}

// RosterPlayer is a player as listed on a team roster.
type RosterPlayer struct {
	Name         string `json:"name"`
	School       string `json:"school"`
	Position     string `json:"position,omitempty"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
	YearInSchool string `json:"year_in_school,omitempty"`
}

// Averages are a player's season per-game averages.
type Averages struct {
	PPG float64 `json:"ppg"`
	RPG float64 `json:"rpg"`
	APG float64 `json:"apg"`
}
