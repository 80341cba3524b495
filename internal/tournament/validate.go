package tournament

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of game dates.
const DateLayout = "2006-01-02"

// Validate checks the natural key of a player record.
func (r PlayerRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrValidation)
	}
	if strings.TrimSpace(r.School) == "" {
		return fmt.Errorf("%w: player school is required", ErrValidation)
	}
	return nil
}

// Validate checks the required fields of a game record.
func (r GameRecord) Validate() error {
	if strings.TrimSpace(r.Team1) == "" || strings.TrimSpace(r.Team2) == "" {
		return fmt.Errorf("%w: both teams are required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, r.GameDate); err != nil {
		return fmt.Errorf("%w: game_date %q is not YYYY-MM-DD", ErrValidation, r.GameDate)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: unknown game status %q", ErrValidation, r.Status)
	}
	if r.ExternalID < 0 {
		return fmt.Errorf("%w: game_id must not be negative", ErrValidation)
	}
	return nil
}

// Validate checks that the line names a player and a game.
func (l StatLine) Validate() error {
	if err := l.PlayerKey().validate(); err != nil {
		return err
	}
	if strings.TrimSpace(l.Team1) == "" || strings.TrimSpace(l.Team2) == "" {
		return fmt.Errorf("%w: stat line must name both teams of its game", ErrValidation)
	}
	return nil
}

func (k PlayerKey) validate() error {
	return PlayerRecord{Name: k.Name, School: k.School}.Validate()
}

// String formats the key for logs and skip reports.
func (k PlayerKey) String() string {
	return k.Name + " (" + k.School + ")"
}

// String formats the key for logs and skip reports.
func (k GameKey) String() string {
	return fmt.Sprintf("game %d: %s vs %s", k.ExternalID, k.Team1, k.Team2)
}
