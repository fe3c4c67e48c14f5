// Package scoring holds the pure per-game scoring rules of a match: which
// side a game winner belongs to, how the score moves, and when a match is
// over.
package scoring

import (
	"fmt"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// DefaultMaxScore is the race length: the first side to this many games wins.
const DefaultMaxScore = 3

// ScoreUpdate is the result of crediting one game to a side.
type ScoreUpdate struct {
	NewTeam1Score int             `json:"newTeam1Score"`
	NewTeam2Score int             `json:"newTeam2Score"`
	WinningTeam   pool.TeamNumber `json:"winningTeam"`
}

// MatchStats summarises a scoreline.
type MatchStats struct {
	TotalGames  int             `json:"totalGames"`
	Winner      pool.TeamNumber `json:"winner"`
	IsFinished  bool            `json:"isFinished"`
	WinnerScore int             `json:"winnerScore"`
	LoserScore  int             `json:"loserScore"`
}

// Advantage describes who leads and by how much.
type Advantage struct {
	LeadingTeam pool.TeamNumber `json:"leadingTeam"`
	Advantage   int             `json:"advantage"`
	IsCloseGame bool            `json:"isCloseGame"`
}

type MomentumKind string

const (
	MomentumPositive MomentumKind = "positive"
	MomentumNegative MomentumKind = "negative"
	MomentumNeutral  MomentumKind = "neutral"
)

type Momentum struct {
	Momentum MomentumKind `json:"momentum"`
	Streak   int          `json:"streak"`
}

// PlayerTeam returns the side winnerID plays on, checking team1 first, or
// pool.NoTeam when the id is on neither side.
func PlayerTeam(match pool.Match, winnerID string) pool.TeamNumber {
	return match.Side(winnerID)
}

// CalculateScoreUpdate credits one game to the side of winnerID. The other
// score is left untouched.
func CalculateScoreUpdate(match pool.Match, winnerID string) (ScoreUpdate, error) {
	team := PlayerTeam(match, winnerID)
	if team == pool.NoTeam {
		return ScoreUpdate{}, fmt.Errorf("player %q: %w", winnerID, pool.ErrWinnerNotFound)
	}

	update := ScoreUpdate{
		NewTeam1Score: match.Team1Score,
		NewTeam2Score: match.Team2Score,
		WinningTeam:   team,
	}
	if team == pool.Team1 {
		update.NewTeam1Score++
	} else {
		update.NewTeam2Score++
	}
	return update, nil
}

// DetermineMatchWinner returns team1 only on a strict lead. A tied score
// resolves to team2.
func DetermineMatchWinner(team1Score, team2Score int) pool.TeamNumber {
	if team1Score > team2Score {
		return pool.Team1
	}
	return pool.Team2
}

// ShouldFinishMatch reports whether either side has reached maxScore.
func ShouldFinishMatch(team1Score, team2Score, maxScore int) bool {
	return max(team1Score, team2Score) >= maxScore
}

func CalculateMatchStats(team1Score, team2Score int) MatchStats {
	return MatchStats{
		TotalGames:  team1Score + team2Score,
		Winner:      DetermineMatchWinner(team1Score, team2Score),
		IsFinished:  ShouldFinishMatch(team1Score, team2Score, DefaultMaxScore),
		WinnerScore: max(team1Score, team2Score),
		LoserScore:  min(team1Score, team2Score),
	}
}

// NextGameNumber is the sequence number of the game that would be played next.
func NextGameNumber(team1Score, team2Score int) int {
	return team1Score + team2Score + 1
}

// CanAddGame reports whether the match still accepts games.
func CanAddGame(match pool.Match) bool {
	return !match.IsFinished && !ShouldFinishMatch(match.Team1Score, match.Team2Score, DefaultMaxScore)
}

// WinRate is wins/total as a percentage, 0 when nothing was played.
func WinRate(wins, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

func TeamAdvantage(team1Score, team2Score int) Advantage {
	diff := team1Score - team2Score
	if diff < 0 {
		diff = -diff
	}
	leading := pool.NoTeam
	switch {
	case team1Score > team2Score:
		leading = pool.Team1
	case team2Score > team1Score:
		leading = pool.Team2
	}
	return Advantage{LeadingTeam: leading, Advantage: diff, IsCloseGame: diff <= 1}
}

// CalculateMomentum looks at the trailing run of game winners for team.
// recentWinners is ordered oldest first.
func CalculateMomentum(recentWinners []pool.TeamNumber, team pool.TeamNumber) Momentum {
	if len(recentWinners) == 0 {
		return Momentum{Momentum: MomentumNeutral}
	}

	streak := 0
	for i := len(recentWinners) - 1; i >= 0; i-- {
		if recentWinners[i] != team {
			break
		}
		streak++
	}

	kind := MomentumNeutral
	switch {
	case streak >= 2:
		kind = MomentumPositive
	case streak == 0:
		kind = MomentumNegative
	}
	return Momentum{Momentum: kind, Streak: streak}
}

func FormatScore(team1Score, team2Score int) string {
	return fmt.Sprintf("%d - %d", team1Score, team2Score)
}

// IsCompetitiveMatch is true for matches of at least 4 games decided by at most 2.
func IsCompetitiveMatch(team1Score, team2Score int) bool {
	return team1Score+team2Score >= 4 && TeamAdvantage(team1Score, team2Score).Advantage <= 2
}
