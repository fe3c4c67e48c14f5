package club

import (
	"database/sql"
	"sync"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// store handles all database operations for the club.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// GameResult is the outcome of RecordGame. JustFinished is true only for
// the game that ended the match.
type GameResult struct {
	Match        pool.Match           `json:"match"`
	Game         pool.Game            `json:"game"`
	Addition     matches.GameAddition `json:"addition"`
	JustFinished bool                 `json:"justFinished"`
}

// AwardedBySystem marks achievements granted by the automatic rules.
const AwardedBySystem = "system"
