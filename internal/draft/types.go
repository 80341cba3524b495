package draft

import (
	"database/sql"
	"sync"
	"time"
)

// store handles participants and draft picks. The write mutex serializes
// RecordPick so the drafted check and the insert see the same state.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}
