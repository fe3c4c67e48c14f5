// Package matches turns raw match records into validated inserts, enriched
// views and per-player statistics. Nothing here performs I/O.
package matches

import (
	"fmt"
	"slices"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/scoring"
	"github.com/maiconsbotelho/sinucalabs/internal/teams"
)

const unknownPlayerName = "Unknown"

// ValidateMatchCreation checks that both teams have the same shape and that
// the player ids are valid.
func ValidateMatchCreation(req CreateRequest) error {
	if (req.Team1Player2ID != "") != (req.Team2Player2ID != "") {
		return pool.NewValidationError("teams must have equal player counts")
	}
	return teams.ValidateMatchPlayers([]string{
		req.Team1Player1ID,
		req.Team1Player2ID,
		req.Team2Player1ID,
		req.Team2Player2ID,
	})
}

// CreateMatchData validates req and returns an insert-ready match with zero
// scores. ID and timestamps are left to the store.
func CreateMatchData(req CreateRequest) (pool.Match, error) {
	if err := ValidateMatchCreation(req); err != nil {
		return pool.Match{}, err
	}
	if req.Team1Player1ID == "" || req.Team2Player1ID == "" {
		return pool.Match{}, pool.NewValidationError("each team needs a first player")
	}
	return pool.Match{
		Team1: pool.NewTeam(req.Team1Player1ID, req.Team1Player2ID),
		Team2: pool.NewTeam(req.Team2Player1ID, req.Team2Player2ID),
	}, nil
}

// PlayerIndex builds the id lookup used by EnrichMatch.
func PlayerIndex(players []pool.Player) map[string]pool.Player {
	index := make(map[string]pool.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return index
}

func resolve(players map[string]pool.Player, id string) pool.Player {
	if p, ok := players[id]; ok {
		return p
	}
	return pool.Player{ID: id, Name: unknownPlayerName}
}

func enrichTeam(team pool.Team, players map[string]pool.Player) pool.EnrichedTeam {
	out := pool.EnrichedTeam{Player1: resolve(players, team.Player1ID())}
	if team.IsDoubles() {
		p2 := resolve(players, team.Player2ID())
		out.Player2 = &p2
	}
	return out
}

// EnrichMatch resolves every slot of the match. Players missing from the
// lookup get a placeholder instead of an error.
func EnrichMatch(match pool.Match, players map[string]pool.Player) pool.EnrichedMatch {
	enriched := pool.EnrichedMatch{
		Match:        match,
		Team1Players: enrichTeam(match.Team1, players),
		Team2Players: enrichTeam(match.Team2, players),
	}
	if match.IsFinished {
		enriched.Winner = scoring.DetermineMatchWinner(match.Team1Score, match.Team2Score)
	}
	return enriched
}

// EnrichMatches applies EnrichMatch to a list.
func EnrichMatches(list []pool.Match, players map[string]pool.Player) []pool.EnrichedMatch {
	out := make([]pool.EnrichedMatch, 0, len(list))
	for _, m := range list {
		out = append(out, EnrichMatch(m, players))
	}
	return out
}

func TransformForHistory(match pool.EnrichedMatch) HistoryEntry {
	return HistoryEntry{
		ID: match.ID,
		Team1: HistoryTeam{
			Player1: match.Team1Players.Player1,
			Player2: match.Team1Players.Player2,
			Score:   match.Team1Score,
		},
		Team2: HistoryTeam{
			Player1: match.Team2Players.Player1,
			Player2: match.Team2Players.Player2,
			Score:   match.Team2Score,
		},
		IsFinished: match.IsFinished,
		CreatedAt:  match.CreatedAt,
		Winner:     match.Winner.String(),
	}
}

// ProcessGameAddition computes the effect of winnerID taking the next game.
// GameNumber comes from the scores before the update, ShouldFinish from the
// scores after it.
func ProcessGameAddition(match pool.Match, winnerID string) (GameAddition, error) {
	if !scoring.CanAddGame(match) {
		return GameAddition{}, fmt.Errorf("match %s: %w", match.ID, pool.ErrMatchFinished)
	}

	update, err := scoring.CalculateScoreUpdate(match, winnerID)
	if err != nil {
		return GameAddition{}, err
	}

	return GameAddition{
		ScoreUpdate:  update,
		ShouldFinish: scoring.ShouldFinishMatch(update.NewTeam1Score, update.NewTeam2Score, scoring.DefaultMaxScore),
		GameNumber:   scoring.NextGameNumber(match.Team1Score, match.Team2Score),
	}, nil
}

func MatchStats(match pool.Match) Stats {
	stats := scoring.CalculateMatchStats(match.Team1Score, match.Team2Score)
	out := Stats{
		TotalGames:    stats.TotalGames,
		IsCompetitive: scoring.IsCompetitiveMatch(match.Team1Score, match.Team2Score),
		Advantage:     scoring.TeamAdvantage(match.Team1Score, match.Team2Score),
	}
	if match.IsFinished {
		out.Winner = stats.Winner
	}
	return out
}

func teamNames(team pool.EnrichedTeam) []string {
	names := []string{team.Player1.Name}
	if team.Player2 != nil {
		names = append(names, team.Player2.Name)
	}
	return names
}

func FormatMatch(match pool.EnrichedMatch) FormattedMatch {
	var out FormattedMatch
	out.ID = match.ID
	out.Teams.Team1 = FormattedTeam{Players: teamNames(match.Team1Players), Score: match.Team1Score}
	out.Teams.Team2 = FormattedTeam{Players: teamNames(match.Team2Players), Score: match.Team2Score}
	out.Status = StatusActive
	if match.IsFinished {
		out.Status = StatusFinished
	}
	out.Winner = match.Winner
	out.ScoreFormatted = scoring.FormatScore(match.Team1Score, match.Team2Score)
	return out
}

// ParseStatus accepts active, finished or all. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusFinished:
		return Status(s), nil
	default:
		return "", pool.NewValidationError(fmt.Sprintf("invalid status %q: use active, finished or all", s))
	}
}

func FilterByStatus(list []pool.Match, status Status) []pool.Match {
	if status == StatusAll || status == "" {
		return list
	}
	finished := status == StatusFinished
	out := make([]pool.Match, 0, len(list))
	for _, m := range list {
		if m.IsFinished == finished {
			out = append(out, m)
		}
	}
	return out
}

// SortByDate returns a sorted copy ordered by creation time.
func SortByDate(list []pool.Match, dir SortDirection) []pool.Match {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b pool.Match) int {
		if dir == Ascending {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func PlayerMatches(list []pool.Match, playerID string) []pool.Match {
	var out []pool.Match
	for _, m := range list {
		if m.Side(playerID) != pool.NoTeam {
			out = append(out, m)
		}
	}
	return out
}

// CalculatePlayerStats aggregates the finished matches playerID took part in.
// A match counts as won only on a strictly higher score.
func CalculatePlayerStats(list []pool.Match, playerID string) PlayerStats {
	played := PlayerMatches(FilterByStatus(list, StatusFinished), playerID)

	var stats PlayerStats
	for _, m := range played {
		side := m.Side(playerID)
		own, opp := m.Score(side), m.Score(side.Opponent())
		if own > opp {
			stats.Wins++
		}
		stats.GamesWon += own
		stats.TotalGames += own + opp
	}

	stats.TotalMatches = len(played)
	stats.Losses = stats.TotalMatches - stats.Wins
	stats.WinRate = scoring.WinRate(stats.Wins, stats.TotalMatches)
	stats.GameWinRate = scoring.WinRate(stats.GamesWon, stats.TotalGames)
	return stats
}

// DisplayStatus is the lifecycle label shown for a single match.
func DisplayStatus(match pool.Match) Display {
	switch {
	case match.IsFinished:
		return Display{Status: DisplayFinished}
	case match.Team1Score == 0 && match.Team2Score == 0:
		return Display{Status: DisplayWaiting, CanAddGame: true}
	default:
		return Display{Status: DisplayInProgress, CanAddGame: scoring.CanAddGame(match)}
	}
}

// IsRecentMatch reports whether the match was created within the last hours.
func IsRecentMatch(match pool.Match, now time.Time, hours int) bool {
	return now.Sub(match.CreatedAt) <= time.Duration(hours)*time.Hour
}
