package pool

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Team is one side of a match. It is either Singles (one player) or
// Doubles (two players); the zero value is an empty team and is never valid
// inside a stored match.
type Team struct {
	first  string
	second string
}

// Singles builds a one-player team.
func Singles(playerID string) Team {
	return Team{first: playerID}
}

// Doubles builds a two-player team.
func Doubles(player1ID, player2ID string) Team {
	return Team{first: player1ID, second: player2ID}
}

// NewTeam picks the variant from the second slot: an empty second id means singles.
func NewTeam(player1ID, player2ID string) Team {
	if player2ID == "" {
		return Singles(player1ID)
	}
	return Doubles(player1ID, player2ID)
}

func (t Team) IsDoubles() bool { return t.second != "" }

func (t Team) IsEmpty() bool { return t.first == "" && t.second == "" }

// Size is 1 for singles and 2 for doubles.
func (t Team) Size() int {
	switch {
	case t.IsEmpty():
		return 0
	case t.IsDoubles():
		return 2
	default:
		return 1
	}
}

// Player1ID is the first slot.
func (t Team) Player1ID() string { return t.first }

// Player2ID is the second slot, empty for singles.
func (t Team) Player2ID() string { return t.second }

// PlayerIDs returns the ids in slot order.
func (t Team) PlayerIDs() []string {
	if t.IsDoubles() {
		return []string{t.first, t.second}
	}
	if t.first == "" {
		return nil
	}
	return []string{t.first}
}

// Has reports whether playerID occupies a slot of the team.
func (t Team) Has(playerID string) bool {
	if playerID == "" {
		return false
	}
	return t.first == playerID || t.second == playerID
}

// Key normalizes the team identity so (A,B) and (B,A) aggregate together.
func (t Team) Key() string {
	ids := t.PlayerIDs()
	sort.Strings(ids)
	return strings.Join(ids, "-")
}

// SameAs reports whether both teams hold the same players, in any order.
func (t Team) SameAs(other Team) bool {
	return t.Size() == other.Size() && t.Key() == other.Key()
}

func (t Team) String() string {
	if t.IsDoubles() {
		return fmt.Sprintf("%s & %s", t.first, t.second)
	}
	return t.first
}

type teamJSON struct {
	Player1ID string  `json:"player1_id"`
	Player2ID *string `json:"player2_id"`
}

func (t Team) MarshalJSON() ([]byte, error) {
	out := teamJSON{Player1ID: t.first}
	if t.IsDoubles() {
		second := t.second
		out.Player2ID = &second
	}
	return json.Marshal(out)
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var in teamJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var second string
	if in.Player2ID != nil {
		second = *in.Player2ID
	}
	*t = NewTeam(in.Player1ID, second)
	return nil
}
