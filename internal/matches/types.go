package matches

import (
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/scoring"
)

// CreateRequest is the body used to open a match. Second slots are empty for singles.
type CreateRequest struct {
	Team1Player1ID string `json:"team1Player1Id"`
	Team1Player2ID string `json:"team1Player2Id,omitempty"`
	Team2Player1ID string `json:"team2Player1Id"`
	Team2Player2ID string `json:"team2Player2Id,omitempty"`
}

// GameAddition is what a caller must persist, atomically, to record one game.
type GameAddition struct {
	ScoreUpdate  scoring.ScoreUpdate `json:"scoreUpdate"`
	ShouldFinish bool                `json:"shouldFinish"`
	GameNumber   int                 `json:"gameNumber"`
}

type HistoryTeam struct {
	Player1 pool.Player  `json:"player1"`
	Player2 *pool.Player `json:"player2"`
	Score   int          `json:"score"`
}

// HistoryEntry is the team-grouped view used by match history lists.
type HistoryEntry struct {
	ID         string      `json:"id"`
	Team1      HistoryTeam `json:"team1"`
	Team2      HistoryTeam `json:"team2"`
	IsFinished bool        `json:"isFinished"`
	CreatedAt  time.Time   `json:"createdAt"`
	Winner     string      `json:"winner,omitempty"`
}

type Stats struct {
	TotalGames    int               `json:"totalGames"`
	Winner        pool.TeamNumber   `json:"winner,omitempty"`
	IsCompetitive bool              `json:"isCompetitive"`
	Advantage     scoring.Advantage `json:"advantage"`
}

type FormattedTeam struct {
	Players []string `json:"players"`
	Score   int      `json:"score"`
}

type FormattedMatch struct {
	ID    string `json:"id"`
	Teams struct {
		Team1 FormattedTeam `json:"team1"`
		Team2 FormattedTeam `json:"team2"`
	} `json:"teams"`
	Status         Status          `json:"status"`
	Winner         pool.TeamNumber `json:"winner,omitempty"`
	ScoreFormatted string          `json:"scoreFormatted"`
}

// PlayerStats holds match-level and game-level results of one player.
// WinRate is per match, GameWinRate is per game; the denominators differ.
type PlayerStats struct {
	TotalMatches int     `json:"totalMatches"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	TotalGames   int     `json:"totalGames"`
	GamesWon     int     `json:"gamesWon"`
	GameWinRate  float64 `json:"gameWinRate"`
}

// Status is the lifecycle filter for match lists.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusAll      Status = "all"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type HeadToHead struct {
	TotalMatches int `json:"totalMatches"`
	Team1Wins    int `json:"team1Wins"`
	Team2Wins    int `json:"team2Wins"`
	TotalGames   int `json:"totalGames"`
	Team1Games   int `json:"team1Games"`
	Team2Games   int `json:"team2Games"`
}

type StreakKind string

const (
	StreakWin  StreakKind = "win"
	StreakLoss StreakKind = "loss"
	StreakNone StreakKind = "none"
)

type Streak struct {
	Kind  StreakKind `json:"type"`
	Count int        `json:"count"`
}

type DisplayState string

const (
	DisplayWaiting    DisplayState = "waiting"
	DisplayInProgress DisplayState = "in_progress"
	DisplayFinished   DisplayState = "finished"
)

type Display struct {
	Status     DisplayState `json:"status"`
	CanAddGame bool         `json:"canAddGame"`
}
