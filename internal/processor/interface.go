package processor

import (
	"context"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatch(id string) (*pool.Match, error)
	GetAllMatches() ([]pool.Match, error)
	GetAllPlayers() ([]pool.Player, error)
	GetAchievements() ([]pool.Achievement, error)
	GetPlayerAchievements(playerID string) ([]pool.PlayerAchievement, error)
	AwardAchievement(award pool.PlayerAchievement) (*pool.PlayerAchievement, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}

// Rankings is the ranking lookup used by the digest.
type Rankings interface {
	Get(ctx context.Context, period ranking.Period, mode ranking.Mode, now time.Time) (ranking.RankingData, error)
}
