package club

import (
	"sync"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use. Methods without a Func return zero values.
type MockStore struct {
	mu sync.Mutex

	AddPlayerFunc                func(name string) (*pool.Player, error)
	UpdatePlayerFunc             func(id, name string) (*pool.Player, error)
	GetPlayerFunc                func(id string) (*pool.Player, error)
	GetAllPlayersFunc            func() ([]pool.Player, error)
	GetPlayersFunc               func(ids []string) ([]pool.Player, error)
	CreateMatchFunc              func(match pool.Match) (*pool.Match, error)
	GetMatchFunc                 func(id string) (*pool.Match, error)
	GetAllMatchesFunc            func() ([]pool.Match, error)
	GetMatchesBetweenFunc        func(start, end time.Time) ([]pool.Match, error)
	RecordGameFunc               func(matchID, winnerID string) (*GameResult, error)
	GetGamesFunc                 func(matchID string) ([]pool.Game, error)
	UpsertAchievementsFunc       func(list []pool.Achievement) (int, error)
	GetAchievementsFunc          func() ([]pool.Achievement, error)
	GetAchievementFunc           func(code string) (*pool.Achievement, error)
	AwardAchievementFunc         func(award pool.PlayerAchievement) (*pool.PlayerAchievement, error)
	GetPlayerAchievementsFunc    func(playerID string) ([]pool.PlayerAchievement, error)
	GetAllPlayerAchievementsFunc func() ([]pool.PlayerAchievement, error)
	RevokeAchievementFunc        func(id string) error
	ClearFunc                    func()

	// Call records
	AddPlayerCalls        []string
	CreateMatchCalls      []pool.Match
	RecordGameCalls       []struct{ MatchID, WinnerID string }
	AwardAchievementCalls []pool.PlayerAchievement
	RevokeCalls           []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.CreateMatchCalls = nil
	m.RecordGameCalls = nil
	m.AwardAchievementCalls = nil
	m.RevokeCalls = nil
}

func (m *MockStore) AddPlayer(name string) (*pool.Player, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name)
	}
	return &pool.Player{ID: name, Name: name}, nil
}

func (m *MockStore) UpdatePlayer(id, name string) (*pool.Player, error) {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(id, name)
	}
	return &pool.Player{ID: id, Name: name}, nil
}

func (m *MockStore) GetPlayer(id string) (*pool.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, pool.ErrNotFound
}

func (m *MockStore) GetAllPlayers() ([]pool.Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(ids []string) ([]pool.Player, error) {
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(ids)
	}
	return nil, nil
}

func (m *MockStore) CreateMatch(match pool.Match) (*pool.Match, error) {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return &match, nil
}

func (m *MockStore) GetMatch(id string) (*pool.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(id)
	}
	return nil, pool.ErrNotFound
}

func (m *MockStore) GetAllMatches() ([]pool.Match, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesBetween(start, end time.Time) ([]pool.Match, error) {
	if m.GetMatchesBetweenFunc != nil {
		return m.GetMatchesBetweenFunc(start, end)
	}
	return nil, nil
}

func (m *MockStore) RecordGame(matchID, winnerID string) (*GameResult, error) {
	m.mu.Lock()
	m.RecordGameCalls = append(m.RecordGameCalls, struct{ MatchID, WinnerID string }{matchID, winnerID})
	m.mu.Unlock()
	if m.RecordGameFunc != nil {
		return m.RecordGameFunc(matchID, winnerID)
	}
	return nil, pool.ErrNotFound
}

func (m *MockStore) GetGames(matchID string) ([]pool.Game, error) {
	if m.GetGamesFunc != nil {
		return m.GetGamesFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) UpsertAchievements(list []pool.Achievement) (int, error) {
	if m.UpsertAchievementsFunc != nil {
		return m.UpsertAchievementsFunc(list)
	}
	return len(list), nil
}

func (m *MockStore) GetAchievements() ([]pool.Achievement, error) {
	if m.GetAchievementsFunc != nil {
		return m.GetAchievementsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetAchievement(code string) (*pool.Achievement, error) {
	if m.GetAchievementFunc != nil {
		return m.GetAchievementFunc(code)
	}
	return nil, pool.ErrNotFound
}

func (m *MockStore) AwardAchievement(award pool.PlayerAchievement) (*pool.PlayerAchievement, error) {
	m.mu.Lock()
	m.AwardAchievementCalls = append(m.AwardAchievementCalls, award)
	m.mu.Unlock()
	if m.AwardAchievementFunc != nil {
		return m.AwardAchievementFunc(award)
	}
	return &award, nil
}

func (m *MockStore) GetPlayerAchievements(playerID string) ([]pool.PlayerAchievement, error) {
	if m.GetPlayerAchievementsFunc != nil {
		return m.GetPlayerAchievementsFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GetAllPlayerAchievements() ([]pool.PlayerAchievement, error) {
	if m.GetAllPlayerAchievementsFunc != nil {
		return m.GetAllPlayerAchievementsFunc()
	}
	return nil, nil
}

func (m *MockStore) RevokeAchievement(id string) error {
	m.mu.Lock()
	m.RevokeCalls = append(m.RevokeCalls, id)
	m.mu.Unlock()
	if m.RevokeAchievementFunc != nil {
		return m.RevokeAchievementFunc(id)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
