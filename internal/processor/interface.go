package processor

import (
	"context"

	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	AddTeam(ctx context.Context, team club.Team) (club.Team, error)
	GetTeam(ctx context.Context, teamID string) (club.Team, error)
	ListTeams(ctx context.Context) ([]club.Team, error)
	AddMatch(ctx context.Context, record match.Record) (match.Record, error)
	ListMatches(ctx context.Context) ([]match.Record, error)
	DeleteMatch(ctx context.Context, matchID string) error
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
