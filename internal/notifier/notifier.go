package notifier

import (
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished matches
	SendMatchResult(result MatchResult, dryRun bool) error
	// For the scheduled digest
	SendRanking(data ranking.RankingData, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(data ranking.RankingData) (any, error)
	FormatPlayerStatsResponse(summary PlayerSummary) (any, error)
	FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error)
}

// Award is an achievement granted as a consequence of a match.
type Award struct {
	PlayerName  string
	Achievement pool.Achievement
}

// MatchResult is everything announced when a match finishes.
type MatchResult struct {
	Match  pool.EnrichedMatch
	Awards []Award
}

// PlayerSummary is a player's all-time record.
type PlayerSummary struct {
	Player       pool.Player
	Stats        matches.PlayerStats
	Streak       matches.Streak
	Level        ranking.Level
	Achievements int
}
