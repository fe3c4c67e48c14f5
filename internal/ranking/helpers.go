package ranking

import (
	"fmt"
	"math"
)

// Level buckets a win rate.
type Level string

const (
	Legendary    Level = "LEGENDARY"
	Excellent    Level = "EXCELLENT"
	Good         Level = "GOOD"
	Average      Level = "AVERAGE"
	BelowAverage Level = "BELOW_AVERAGE"
	Poor         Level = "POOR"
)

func PerformanceLevel(winRate float64) Level {
	switch {
	case winRate >= 80:
		return Legendary
	case winRate >= 70:
		return Excellent
	case winRate >= 60:
		return Good
	case winRate >= 50:
		return Average
	case winRate >= 30:
		return BelowAverage
	default:
		return Poor
	}
}

// DefaultEloK is the K-factor used by EloRating callers that have no better value.
const DefaultEloK = 32

// EloRating returns the rounded new rating after one result.
func EloRating(current, opponent float64, won bool, k float64) float64 {
	expected := 1 / (1 + math.Pow(10, (opponent-current)/400))
	actual := 0.0
	if won {
		actual = 1
	}
	return math.Round(current + k*(actual-expected))
}

func AvgGamesPerMatch(s TeamStats) float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.GamesPlayed) / float64(s.MatchesPlayed)
}

// TeamName joins player names for display.
func TeamName(t RankedTeam) string {
	if t.Player2 == nil {
		return t.Player1.Name
	}
	return fmt.Sprintf("%s & %s", t.Player1.Name, t.Player2.Name)
}

// FormatRecord renders "3W - 1L".
func FormatRecord(s TeamStats) string {
	return fmt.Sprintf("%dW - %dL", s.Wins, s.Losses)
}
