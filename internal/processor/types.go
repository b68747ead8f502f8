package processor

import (
	"errors"

	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/pubsub"
)

// ErrValidation marks input errors; callers map it to a 400.
var ErrValidation = errors.New("validation failed")

const defaultDeleteWorkers = 4

// Processor handles the business logic of teams, matches and the leaderboard.
type Processor struct {
	store         Store
	calc          match.Calculator
	pubsub        pubsub.PubSubClient
	notifier      Notifier
	metrics       metrics.Metrics
	deleteWorkers int
	inlineNotify  bool
}

type Option func(*Processor)

// WithDeleteWorkers bounds the number of concurrent deletes during a bulk delete.
func WithDeleteWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.deleteWorkers = n
		}
	}
}

// WithInlineNotifications sends result notifications right after saving a match
// instead of waiting for the match-recorded event to be pushed back.
func WithInlineNotifications() Option {
	return func(p *Processor) {
		p.inlineNotify = true
	}
}

// MatchEntry is a fully entered match as submitted by a client. Teams are referenced by name.
type MatchEntry struct {
	Team1 string       `json:"team1"`
	Team2 string       `json:"team2"`
	Games []match.Game `json:"games"`
}

// DeleteFailure describes one match that could not be deleted.
type DeleteFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// DeleteSummary reports the outcome of a bulk delete.
type DeleteSummary struct {
	Requested int             `json:"requested"`
	Deleted   int             `json:"deleted"`
	Failures  []DeleteFailure `json:"failures"`
	DryRun    bool            `json:"dryRun,omitempty"`
}
