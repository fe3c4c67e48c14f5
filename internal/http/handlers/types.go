package handlers

import (
	"context"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// Rankings computes cached leaderboards.
type Rankings interface {
	Get(ctx context.Context, period ranking.Period, mode ranking.Mode, now time.Time) (ranking.RankingData, error)
	Invalidate(ctx context.Context)
}

// MatchPublisher announces finished matches.
type MatchPublisher interface {
	PublishMatchFinished(match pool.Match, dryRun bool) error
}

// Digester posts the ranking digest on demand.
type Digester interface {
	SendRankingDigest(ctx context.Context, period ranking.Period, mode ranking.Mode, dryRun bool) error
}

// EventHandler consumes a decoded push payload.
type EventHandler interface {
	HandleMessage(data []byte) error
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type awardRequest struct {
	AchievementCode string `json:"achievement_code"`
	Notes           string `json:"notes"`
	AwardedBy       string `json:"awarded_by"`
}

type customAchievementRequest struct {
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Category      pool.AchievementCategory `json:"category"`
	AllowMultiple bool                     `json:"allow_multiple"`
}

type updateMatchRequest struct {
	Action   string `json:"action"`
	WinnerID string `json:"winnerId"`
}

const actionAddGame = "add_game"

type seedResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}
