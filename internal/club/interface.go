package club

import (
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	AddPlayer(name string) (*pool.Player, error)
	UpdatePlayer(id, name string) (*pool.Player, error)
	GetPlayer(id string) (*pool.Player, error)
	GetAllPlayers() ([]pool.Player, error)
	GetPlayers(ids []string) ([]pool.Player, error)

	CreateMatch(match pool.Match) (*pool.Match, error)
	GetMatch(id string) (*pool.Match, error)
	GetAllMatches() ([]pool.Match, error)
	GetMatchesBetween(start, end time.Time) ([]pool.Match, error)

	RecordGame(matchID, winnerID string) (*GameResult, error)
	GetGames(matchID string) ([]pool.Game, error)

	UpsertAchievements(list []pool.Achievement) (int, error)
	GetAchievements() ([]pool.Achievement, error)
	GetAchievement(code string) (*pool.Achievement, error)
	AwardAchievement(award pool.PlayerAchievement) (*pool.PlayerAchievement, error)
	GetPlayerAchievements(playerID string) ([]pool.PlayerAchievement, error)
	GetAllPlayerAchievements() ([]pool.PlayerAchievement, error)
	RevokeAchievement(id string) error

	Clear()
}
