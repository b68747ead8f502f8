package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncTeamsRegistered()
	ObserveLeaderboardDuration(duration float64)
	IncDeleteAttempt(result string)
	AddMatchesDeleted(n int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// Delete attempt results.
const (
	DeleteAuthorized = "authorized"
	DeleteRejected   = "rejected"
	DeleteFailed     = "failed"
)
