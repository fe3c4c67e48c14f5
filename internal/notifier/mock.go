package notifier

import (
	"sync"

	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc func(result MatchResult, dryRun bool) error
	SendRankingFunc     func(data ranking.RankingData, dryRun bool) error

	// Call records
	SendMatchResultCalls []MatchResult
	SendRankingCalls     []ranking.RankingData
	DryRuns              []bool

	// Spies for format functions
	FormatRankingResponseFunc        func(data ranking.RankingData) (any, error)
	FormatPlayerStatsResponseFunc    func(summary PlayerSummary) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string, suggestions []string) (any, error)

	// Call records for format functions
	LastRankingResponse        any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendRankingCalls = nil
	m.DryRuns = nil
	m.LastRankingResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendMatchResult(result MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, result)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendRanking(data ranking.RankingData, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingCalls = append(m.SendRankingCalls, data)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendRankingFunc != nil {
		return m.SendRankingFunc(data, dryRun)
	}
	return nil
}

func (m *Mock) FormatRankingResponse(data ranking.RankingData) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingResponseFunc != nil {
		resp, err := m.FormatRankingResponseFunc(data)
		m.LastRankingResponse = resp
		return resp, err
	}
	return "formatted_ranking", nil
}

func (m *Mock) FormatPlayerStatsResponse(summary PlayerSummary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(summary)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query, suggestions)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}

// MatchResults returns a copy of the recorded SendMatchResult calls.
func (m *Mock) MatchResults() []MatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MatchResult, len(m.SendMatchResultCalls))
	copy(out, m.SendMatchResultCalls)
	return out
}
