package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesRecorded      int
	teamsRegistered      int
	leaderboardDurations []float64
	deleteAttempts       map[string]int
	matchesDeleted       int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		leaderboardDurations: make([]float64, 0),
		deleteAttempts:       make(map[string]int),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncTeamsRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamsRegistered++
}

func (m *Mock) ObserveLeaderboardDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardDurations = append(m.leaderboardDurations, duration)
}

func (m *Mock) IncDeleteAttempt(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteAttempts[result]++
}

func (m *Mock) AddMatchesDeleted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDeleted += n
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// TeamsRegistered returns the number of times IncTeamsRegistered was called.
func (m *Mock) TeamsRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamsRegistered
}

// LeaderboardComputations returns the number of observed leaderboard durations.
func (m *Mock) LeaderboardComputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leaderboardDurations)
}

// DeleteAttempts returns how often IncDeleteAttempt was called with result.
func (m *Mock) DeleteAttempts(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteAttempts[result]
}

// MatchesDeleted returns the sum passed to AddMatchesDeleted.
func (m *Mock) MatchesDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDeleted
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
