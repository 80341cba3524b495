package games

import (
	"database/sql"
	"sync"
)

// store handles all database operations for games and player game stats.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
