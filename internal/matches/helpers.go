package matches

import (
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// AllPlayerIDs lists the occupied slots of a match.
func AllPlayerIDs(match pool.Match) []string {
	return match.PlayerIDs()
}

// AreSameTeams reports whether two matches were played between the same two
// teams, whichever side each team was on.
func AreSameTeams(a, b pool.Match) bool {
	sameOrder := a.Team1.SameAs(b.Team1) && a.Team2.SameAs(b.Team2)
	swapped := a.Team1.SameAs(b.Team2) && a.Team2.SameAs(b.Team1)
	return sameOrder || swapped
}

// CalculateHeadToHead compares two teams over every match they played
// against each other. Only finished matches contribute wins and games.
func CalculateHeadToHead(list []pool.Match, team1, team2 pool.Team) HeadToHead {
	var h HeadToHead
	for _, m := range list {
		var own, opp int
		switch {
		case m.Team1.SameAs(team1) && m.Team2.SameAs(team2):
			own, opp = m.Team1Score, m.Team2Score
		case m.Team1.SameAs(team2) && m.Team2.SameAs(team1):
			own, opp = m.Team2Score, m.Team1Score
		default:
			continue
		}

		h.TotalMatches++
		if !m.IsFinished {
			continue
		}
		if own > opp {
			h.Team1Wins++
		} else {
			h.Team2Wins++
		}
		h.Team1Games += own
		h.Team2Games += opp
	}
	h.TotalGames = h.Team1Games + h.Team2Games
	return h
}

// RecentMatches returns the newest limit matches involving playerID.
func RecentMatches(list []pool.Match, playerID string, limit int) []pool.Match {
	recent := SortByDate(PlayerMatches(list, playerID), Descending)
	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// PlayerStreak counts the run of identical results ending with the player's
// latest finished match.
func PlayerStreak(list []pool.Match, playerID string) Streak {
	played := SortByDate(PlayerMatches(FilterByStatus(list, StatusFinished), playerID), Descending)
	if len(played) == 0 {
		return Streak{Kind: StreakNone}
	}

	won := func(m pool.Match) bool {
		side := m.Side(playerID)
		return m.Score(side) > m.Score(side.Opponent())
	}

	last := won(played[0])
	count := 0
	for _, m := range played {
		if won(m) != last {
			break
		}
		count++
	}

	kind := StreakLoss
	if last {
		kind = StreakWin
	}
	return Streak{Kind: kind, Count: count}
}
