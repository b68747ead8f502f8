package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/match"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls    []match.Record
	SendMatchesClearedCalls []int
	SendLeaderboardCalls    [][]leaderboard.TeamStats

	// Spies
	SendMatchResultFunc func(record match.Record, dryRun bool) error
	SendLeaderboardFunc func(stats []leaderboard.TeamStats, dryRun bool) error

	// Last formatted responses
	LastLeaderboardResponse  []leaderboard.TeamStats
	LastTeamStatsResponse    *leaderboard.TeamStats
	LastTeamNotFoundResponse string
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
	m.SendMatchesClearedCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendMatchResult(ctx context.Context, record match.Record, dryRun bool) error {
	m.mu.Lock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, record)
	fn := m.SendMatchResultFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(record, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchesCleared(ctx context.Context, deleted int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchesClearedCalls = append(m.SendMatchesClearedCalls, deleted)
	return nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, stats []leaderboard.TeamStats, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, stats)
	fn := m.SendLeaderboardFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(stats, dryRun)
	}
	return nil
}

// ResultCalls returns a copy of the records passed to SendMatchResult.
func (m *Mock) ResultCalls() []match.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]match.Record(nil), m.SendMatchResultCalls...)
}

func (m *Mock) FormatLeaderboardResponse(stats []leaderboard.TeamStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLeaderboardResponse = stats
	return map[string]any{"text": "leaderboard", "teams": len(stats)}, nil
}

func (m *Mock) FormatTeamStatsResponse(stats *leaderboard.TeamStats, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastTeamStatsResponse = stats
	return map[string]any{"text": "stats for " + stats.Name}, nil
}

func (m *Mock) FormatTeamNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastTeamNotFoundResponse = query
	return map[string]any{"text": "not found: " + query}, nil
}
