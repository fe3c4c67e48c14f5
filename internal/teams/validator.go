// Package teams validates team composition, both for a finished selection
// and while a roster is being picked one player at a time.
package teams

import (
	"slices"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// DefaultTeamSize is the doubles capacity. Singles selection uses 1.
const DefaultTeamSize = 2

// Status is how a player shows up during team selection.
type Status struct {
	Selected bool            `json:"selected"`
	Disabled bool            `json:"disabled"`
	Team     pool.TeamNumber `json:"team,omitempty"`
}

// ValidateMatchPlayers checks the flat list of player ids of a new match.
// Empty ids are ignored; the rest must be 2 or 4 distinct ids.
func ValidateMatchPlayers(playerIDs []string) error {
	provided := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		if id != "" {
			provided = append(provided, id)
		}
	}

	if len(provided) != 2 && len(provided) != 4 {
		return pool.NewValidationError("select 2 or 4 players")
	}

	seen := make(map[string]struct{}, len(provided))
	for _, id := range provided {
		if _, dup := seen[id]; dup {
			return pool.NewValidationError("duplicate players")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateTeamsForMatch checks two selected doubles teams.
func ValidateTeamsForMatch(team1, team2 []pool.Player) error {
	if !IsTeamComplete(team1, DefaultTeamSize) || !IsTeamComplete(team2, DefaultTeamSize) {
		return pool.NewValidationError("both teams must have 2 players")
	}
	for _, p := range team1 {
		if IsPlayerInTeam(team2, p.ID) {
			return pool.NewValidationError("same player in both teams")
		}
	}
	return nil
}

func IsPlayerInTeam(team []pool.Player, playerID string) bool {
	return slices.ContainsFunc(team, func(p pool.Player) bool { return p.ID == playerID })
}

// CanAddPlayer is true when the player is absent and the team has room.
func CanAddPlayer(team []pool.Player, player pool.Player, capacity int) bool {
	return !IsPlayerInTeam(team, player.ID) && len(team) < capacity
}

// TogglePlayer removes the player if present, adds it if there is room, and
// otherwise returns the team unchanged. The input slice is never modified.
func TogglePlayer(team []pool.Player, player pool.Player, capacity int) []pool.Player {
	if IsPlayerInTeam(team, player.ID) {
		out := make([]pool.Player, 0, len(team))
		for _, p := range team {
			if p.ID != player.ID {
				out = append(out, p)
			}
		}
		return out
	}
	if len(team) < capacity {
		out := make([]pool.Player, 0, len(team)+1)
		out = append(out, team...)
		return append(out, player)
	}
	return team
}

func IsTeamComplete(team []pool.Player, size int) bool {
	return len(team) == size
}

// CanSelectPlayer is false for players already on the opposing team, and for
// players already on a full current team.
func CanSelectPlayer(player pool.Player, current, opposing []pool.Player, capacity int) bool {
	if IsPlayerInTeam(opposing, player.ID) {
		return false
	}
	return !IsPlayerInTeam(current, player.ID) || len(current) < capacity
}

// PlayerStatus reports selection state while picking the team for step.
// Team1 is always picked first, so only step Team2 disables anyone.
func PlayerStatus(player pool.Player, team1, team2 []pool.Player, step pool.TeamNumber) Status {
	inTeam1 := IsPlayerInTeam(team1, player.ID)
	inTeam2 := IsPlayerInTeam(team2, player.ID)

	status := Status{
		Selected: (step == pool.Team1 && inTeam1) || (step == pool.Team2 && inTeam2),
		Disabled: step == pool.Team2 && inTeam1,
	}
	switch {
	case inTeam1:
		status.Team = pool.Team1
	case inTeam2:
		status.Team = pool.Team2
	}
	return status
}
