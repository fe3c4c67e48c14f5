package pool

import "time"

// TeamNumber identifies a side of a match. NoTeam is used when a player
// belongs to neither side.
type TeamNumber int

const (
	NoTeam TeamNumber = 0
	Team1  TeamNumber = 1
	Team2  TeamNumber = 2
)

func (n TeamNumber) String() string {
	switch n {
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	default:
		return ""
	}
}

// Opponent returns the other side. NoTeam has no opponent.
func (n TeamNumber) Opponent() TeamNumber {
	switch n {
	case Team1:
		return Team2
	case Team2:
		return Team1
	default:
		return NoTeam
	}
}

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Match is a race between two teams of the same variant. Scores only move
// through recorded games.
type Match struct {
	ID         string    `json:"id"`
	Team1      Team      `json:"team1"`
	Team2      Team      `json:"team2"`
	Team1Score int       `json:"team1_score"`
	Team2Score int       `json:"team2_score"`
	IsFinished bool      `json:"is_finished"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsDoubles reports whether the match is 2v2.
func (m Match) IsDoubles() bool {
	return m.Team1.IsDoubles()
}

// Team returns the composition of the given side.
func (m Match) Team(n TeamNumber) Team {
	switch n {
	case Team1:
		return m.Team1
	case Team2:
		return m.Team2
	default:
		return Team{}
	}
}

// Score returns the score of the given side.
func (m Match) Score(n TeamNumber) int {
	switch n {
	case Team1:
		return m.Team1Score
	case Team2:
		return m.Team2Score
	default:
		return 0
	}
}

// Side returns the team a player is on, checking team1 first.
func (m Match) Side(playerID string) TeamNumber {
	if m.Team1.Has(playerID) {
		return Team1
	}
	if m.Team2.Has(playerID) {
		return Team2
	}
	return NoTeam
}

// PlayerIDs lists every occupied slot, team1 first.
func (m Match) PlayerIDs() []string {
	return append(m.Team1.PlayerIDs(), m.Team2.PlayerIDs()...)
}

// EnrichedTeam is a team with its players resolved. Player2 is nil for singles.
type EnrichedTeam struct {
	Player1 Player  `json:"player1"`
	Player2 *Player `json:"player2"`
}

// EnrichedMatch is a match with resolved players. Winner is set once the match is finished.
type EnrichedMatch struct {
	Match
	Team1Players EnrichedTeam `json:"team1_players"`
	Team2Players EnrichedTeam `json:"team2_players"`
	Winner       TeamNumber   `json:"winner,omitempty"`
}

type Game struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	GameNumber int       `json:"game_number"`
	WinnerID   string    `json:"winner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// AchievementCategory groups achievements in the catalog.
type AchievementCategory string

const (
	CategorySkill       AchievementCategory = "habilidade"
	CategoryBanter      AchievementCategory = "zueira"
	CategoryLuck        AchievementCategory = "sorte"
	CategoryPersistence AchievementCategory = "persistencia"
	CategoryChaos       AchievementCategory = "caos"
)

type Achievement struct {
	Code          string              `json:"code" yaml:"code"`
	Name          string              `json:"name" yaml:"name"`
	Description   string              `json:"description" yaml:"description"`
	Category      AchievementCategory `json:"category" yaml:"category"`
	AllowMultiple bool                `json:"allow_multiple" yaml:"allow_multiple"`
}

type PlayerAchievement struct {
	ID              string       `json:"id"`
	PlayerID        string       `json:"player_id"`
	AchievementCode string       `json:"achievement_code"`
	Notes           string       `json:"notes,omitempty"`
	AwardedBy       string       `json:"awarded_by,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	Achievement     *Achievement `json:"achievement,omitempty"`
}
