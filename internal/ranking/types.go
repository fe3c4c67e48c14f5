package ranking

import (
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// ScoredMatch is a match annotated with its winning side.
type ScoredMatch struct {
	pool.Match
	WinnerTeam pool.TeamNumber
}

// RankedTeam is the resolved identity of a ranking row. Player2 is nil for
// singles teams and individual rankings.
type RankedTeam struct {
	Player1 pool.Player  `json:"player1" msgpack:"player1"`
	Player2 *pool.Player `json:"player2,omitempty" msgpack:"player2"`
}

// PlayerIDs lists the ids of the ranked team.
func (t RankedTeam) PlayerIDs() []string {
	if t.Player2 == nil {
		return []string{t.Player1.ID}
	}
	return []string{t.Player1.ID, t.Player2.ID}
}

// TeamStats aggregates one team over a window. Wins and Losses count games,
// MatchesWon and MatchesLost count matches.
type TeamStats struct {
	Key           string     `json:"key" msgpack:"key"`
	Team          RankedTeam `json:"team" msgpack:"team"`
	Wins          int        `json:"wins" msgpack:"wins"`
	Losses        int        `json:"losses" msgpack:"losses"`
	GamesPlayed   int        `json:"gamesPlayed" msgpack:"games_played"`
	WinRate       float64    `json:"winRate" msgpack:"win_rate"`
	MatchesPlayed int        `json:"matchesPlayed" msgpack:"matches_played"`
	MatchesWon    int        `json:"matchesWon" msgpack:"matches_won"`
	MatchesLost   int        `json:"matchesLost" msgpack:"matches_lost"`
}

type PeriodSummary struct {
	TotalTeams   int     `json:"totalTeams" msgpack:"total_teams"`
	TotalGames   int     `json:"totalGames" msgpack:"total_games"`
	TotalMatches int     `json:"totalMatches" msgpack:"total_matches"`
	AvgWinRate   float64 `json:"avgWinRate" msgpack:"avg_win_rate"`
}

// RankingData is a computed leaderboard for one period and mode.
type RankingData struct {
	Period      Period        `json:"period" msgpack:"period"`
	Mode        Mode          `json:"mode" msgpack:"mode"`
	StartDate   time.Time     `json:"startDate" msgpack:"start_date"`
	EndDate     time.Time     `json:"endDate" msgpack:"end_date"`
	Rankings    []TeamStats   `json:"rankings" msgpack:"rankings"`
	Summary     PeriodSummary `json:"summary" msgpack:"summary"`
	GeneratedAt time.Time     `json:"generatedAt" msgpack:"generated_at"`
}
