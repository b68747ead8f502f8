package notifier

import (
	"context"

	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For saved matches and bulk deletes
	SendMatchResult(ctx context.Context, record match.Record, dryRun bool) error
	SendMatchesCleared(ctx context.Context, deleted int, dryRun bool) error
	SendLeaderboard(ctx context.Context, stats []leaderboard.TeamStats, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(stats []leaderboard.TeamStats) (any, error)
	FormatTeamStatsResponse(stats *leaderboard.TeamStats, query string) (any, error)
	FormatTeamNotFoundResponse(query string) (any, error)
}
