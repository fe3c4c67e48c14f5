// Package ranking aggregates finished matches into per-team leaderboards
// over calendar periods.
package ranking

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/scoring"
)

// DefaultTopLimit is the default size of TopTeams.
const DefaultTopLimit = 10

// Calculator ranks teams against a fixed roster.
type Calculator struct {
	players map[string]pool.Player
}

func NewCalculator(players []pool.Player) *Calculator {
	index := make(map[string]pool.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return &Calculator{players: index}
}

// Annotate attaches the winning side to each match.
func Annotate(list []pool.Match) []ScoredMatch {
	out := make([]ScoredMatch, 0, len(list))
	for _, m := range list {
		out = append(out, ScoredMatch{Match: m, WinnerTeam: scoring.DetermineMatchWinner(m.Team1Score, m.Team2Score)})
	}
	return out
}

// accumulator keeps first-seen order so ties sort deterministically.
type accumulator struct {
	order []string
	stats map[string]*TeamStats
}

func newAccumulator() *accumulator {
	return &accumulator{stats: make(map[string]*TeamStats)}
}

func (a *accumulator) add(key string, team RankedTeam, wins, losses int, wonMatch bool) {
	s, ok := a.stats[key]
	if !ok {
		s = &TeamStats{Key: key, Team: team}
		a.stats[key] = s
		a.order = append(a.order, key)
	}
	s.Wins += wins
	s.Losses += losses
	s.GamesPlayed += wins + losses
	s.MatchesPlayed++
	if wonMatch {
		s.MatchesWon++
	} else {
		s.MatchesLost++
	}
}

func (a *accumulator) result() []TeamStats {
	out := make([]TeamStats, 0, len(a.order))
	for _, key := range a.order {
		s := *a.stats[key]
		if s.GamesPlayed == 0 {
			continue
		}
		s.WinRate = scoring.WinRate(s.Wins, s.GamesPlayed)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].GamesPlayed > out[j].GamesPlayed
	})
	return out
}

// resolveTeam looks up every player of team. ok is false if any is missing.
func (c *Calculator) resolveTeam(team pool.Team) (RankedTeam, bool) {
	p1, ok := c.players[team.Player1ID()]
	if !ok {
		return RankedTeam{}, false
	}
	ranked := RankedTeam{Player1: p1}
	if team.IsDoubles() {
		p2, ok := c.players[team.Player2ID()]
		if !ok {
			return RankedTeam{}, false
		}
		ranked.Player2 = &p2
	}
	return ranked, true
}

// CalculateTeamRankings credits both sides of every match. Game points
// count as wins and losses; the match result feeds MatchesWon/MatchesLost.
// A side with a player missing from the roster is skipped.
func (c *Calculator) CalculateTeamRankings(list []ScoredMatch) []TeamStats {
	acc := newAccumulator()
	for _, m := range list {
		for _, side := range []pool.TeamNumber{pool.Team1, pool.Team2} {
			c.processTeamStats(acc, m, side)
		}
	}
	return acc.result()
}

func (c *Calculator) processTeamStats(acc *accumulator, m ScoredMatch, side pool.TeamNumber) {
	team := m.Team(side)
	ranked, ok := c.resolveTeam(team)
	if !ok {
		log.Warn("Players not found in roster, skipping side", "matchID", m.ID, "players", team.PlayerIDs())
		return
	}
	acc.add(team.Key(), ranked, m.Score(side), m.Score(side.Opponent()), m.WinnerTeam == side)
}

// CalculateIndividualRankings credits every player with the points of their
// side, whatever the match format.
func (c *Calculator) CalculateIndividualRankings(list []ScoredMatch) []TeamStats {
	acc := newAccumulator()
	for _, m := range list {
		for _, side := range []pool.TeamNumber{pool.Team1, pool.Team2} {
			for _, id := range m.Team(side).PlayerIDs() {
				player, ok := c.players[id]
				if !ok {
					log.Warn("Player not found in roster, skipping", "matchID", m.ID, "playerID", id)
					continue
				}
				acc.add(id, RankedTeam{Player1: player}, m.Score(side), m.Score(side.Opponent()), m.WinnerTeam == side)
			}
		}
	}
	return acc.result()
}

// TopTeams truncates an already ordered ranking. A non-positive limit uses DefaultTopLimit.
func TopTeams(rankings []TeamStats, limit int) []TeamStats {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if len(rankings) <= limit {
		return rankings
	}
	return rankings[:limit]
}

// FindTeamRank returns the 1-based position of the team made of the given
// players in any order, or 0 when it is not ranked. player2ID is empty for
// singles and individual rankings.
func FindTeamRank(rankings []TeamStats, player1ID, player2ID string) int {
	key := pool.NewTeam(player1ID, player2ID).Key()
	for i, s := range rankings {
		if s.Key == key {
			return i + 1
		}
	}
	return 0
}

// CalculatePeriodSummary averages win rates per team, unweighted by games.
func CalculatePeriodSummary(rankings []TeamStats) PeriodSummary {
	var summary PeriodSummary
	summary.TotalTeams = len(rankings)
	var sumRate float64
	for _, s := range rankings {
		summary.TotalGames += s.GamesPlayed
		summary.TotalMatches += s.MatchesPlayed
		sumRate += s.WinRate
	}
	if summary.TotalTeams > 0 {
		summary.AvgWinRate = sumRate / float64(summary.TotalTeams)
	}
	return summary
}
