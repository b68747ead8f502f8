package club

import (
	"context"

	"github.com/mauv0809/teamboard/internal/match"
)

// ClubStore defines the interface for interacting with the club's data.
// Teams and matches are append-only; matches can only be removed one by one.
type ClubStore interface {
	AddTeam(ctx context.Context, team Team) (Team, error)
	GetTeam(ctx context.Context, teamID string) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	AddMatch(ctx context.Context, record match.Record) (match.Record, error)
	ListMatches(ctx context.Context) ([]match.Record, error)
	DeleteMatch(ctx context.Context, matchID string) error
	Close(ctx context.Context) error
}
