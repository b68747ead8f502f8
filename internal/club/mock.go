package club

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/teamboard/internal/match"
)

var _ ClubStore = (*Mock)(nil)

// Mock is an in-memory ClubStore for testing. It is safe for concurrent use.
// Setting one of the *Func fields overrides the in-memory behavior of that method.
type Mock struct {
	mu      sync.Mutex
	teams   []Team
	matches []match.Record

	AddMatchFunc    func(ctx context.Context, record match.Record) (match.Record, error)
	ListMatchesFunc func(ctx context.Context) ([]match.Record, error)
	DeleteMatchFunc func(ctx context.Context, matchID string) error

	DeleteMatchCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) AddTeam(ctx context.Context, team Team) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.Name == team.Name {
			return Team{}, fmt.Errorf("%w: %s", ErrTeamExists, team.Name)
		}
	}
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	m.teams = append(m.teams, team)
	return team, nil
}

func (m *Mock) GetTeam(ctx context.Context, teamID string) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return Team{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
}

func (m *Mock) ListTeams(ctx context.Context) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Team{}, m.teams...), nil
}

func (m *Mock) AddMatch(ctx context.Context, record match.Record) (match.Record, error) {
	if m.AddMatchFunc != nil {
		return m.AddMatchFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	m.matches = append(m.matches, record)
	return record, nil
}

func (m *Mock) ListMatches(ctx context.Context) ([]match.Record, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]match.Record{}, m.matches...), nil
}

func (m *Mock) DeleteMatch(ctx context.Context, matchID string) error {
	m.mu.Lock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, matchID)
	m.mu.Unlock()
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, matchID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, rec := range m.matches {
		if rec.ID == matchID {
			m.matches = append(m.matches[:i], m.matches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
}

func (m *Mock) Close(ctx context.Context) error {
	return nil
}
