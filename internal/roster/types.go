package roster

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/bracket-draft/internal/tournament"
)

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex

	legacyNumericOrder bool
}

// SortKey names a player listing sort column.
type SortKey string

const (
	SortName SortKey = "name"
	SortPPG  SortKey = "ppg"
	SortRPG  SortKey = "rpg"
	SortAPG  SortKey = "apg"
	SortSeed SortKey = "seed"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Filter restricts and orders a player listing. Empty fields do not restrict.
type Filter struct {
	Position string
	School   string
	Region   string
	SortBy   SortKey
	Order    Order
}

// FilterOptions are the distinct values players can be filtered by.
type FilterOptions struct {
	Positions []string `json:"positions"`
	Schools   []string `json:"schools"`
	Regions   []string `json:"regions"`
}

// Availability partitions players by whether a draft pick claims them.
type Availability struct {
	Drafted   []tournament.Player `json:"drafted"`
	Undrafted []tournament.Player `json:"undrafted"`
	All       []tournament.Player `json:"all"`
}

// Option configures the store.
type Option func(*store)

// WithLegacyNumericOrder makes ascending ppg/rpg/apg listings return the
// highest values first, as earlier releases did.
func WithLegacyNumericOrder(enabled bool) Option {
	return func(s *store) {
		s.legacyNumericOrder = enabled
	}
}
