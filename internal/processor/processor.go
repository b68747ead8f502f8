package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/draft"
	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor.
func New(store Store, calc match.Calculator, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, opts ...Option) *Processor {
	p := &Processor{
		store:         store,
		calc:          calc,
		pubsub:        pubsub,
		notifier:      notifier,
		metrics:       metrics,
		deleteWorkers: defaultDeleteWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterTeam validates and stores a new team. In dry-run mode nothing is stored.
func (p *Processor) RegisterTeam(ctx context.Context, name string, members []string, dryRun bool) (club.Team, error) {
	team := club.Team{
		Name:    strings.TrimSpace(name),
		Members: club.CleanMembers(members),
	}
	if team.Name == "" {
		return club.Team{}, fmt.Errorf("%w: team name is required", ErrValidation)
	}
	if match.IsPlaceholder(team.Name) {
		return club.Team{}, fmt.Errorf("%w: %w: %q", ErrValidation, match.ErrReservedName, team.Name)
	}
	if len(team.Members) == 0 {
		return club.Team{}, fmt.Errorf("%w: a team needs at least one member", ErrValidation)
	}
	if dryRun {
		log.Info("[Dry Run] Would register team", "name", team.Name, "members", team.Members)
		return team, nil
	}

	team, err := p.store.AddTeam(ctx, team)
	if err != nil {
		return club.Team{}, err
	}
	p.metrics.IncTeamsRegistered()
	return team, nil
}

func (p *Processor) Teams(ctx context.Context) ([]club.Team, error) {
	return p.store.ListTeams(ctx)
}

// Team returns one registered team by id.
func (p *Processor) Team(ctx context.Context, teamID string) (club.Team, error) {
	return p.store.GetTeam(ctx, teamID)
}

func (p *Processor) Matches(ctx context.Context) ([]match.Record, error) {
	return p.store.ListMatches(ctx)
}

// NewDraft returns an empty draft sized for the configured number of games.
func (p *Processor) NewDraft() draft.Draft {
	return draft.New(p.calc.GamesPerMatch())
}

// BuildDraft resolves the entry's team names and replays it into a draft.
// Player picks are checked against team membership.
func (p *Processor) BuildDraft(ctx context.Context, entry MatchEntry) (draft.Draft, error) {
	if len(entry.Games) != p.calc.GamesPerMatch() {
		return draft.Draft{}, fmt.Errorf("%w: %w: got %d, want %d", ErrValidation, match.ErrGameCount, len(entry.Games), p.calc.GamesPerMatch())
	}
	teams, err := p.store.ListTeams(ctx)
	if err != nil {
		return draft.Draft{}, err
	}
	byName := make(map[string]club.Team, len(teams))
	for _, t := range teams {
		byName[t.Name] = t
	}
	resolve := func(name string) (*club.Team, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil
		}
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown team %q", ErrValidation, name)
		}
		return &t, nil
	}
	team1, err := resolve(entry.Team1)
	if err != nil {
		return draft.Draft{}, err
	}
	team2, err := resolve(entry.Team2)
	if err != nil {
		return draft.Draft{}, err
	}

	d, err := draft.Apply(p.NewDraft(), draft.Actions(team1, team2, entry.Games)...)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return d, nil
}

// RecordMatch computes the outcome of a draft, saves it and announces it.
// In dry-run mode the computed record is returned without being saved or announced.
func (p *Processor) RecordMatch(ctx context.Context, d draft.Draft, dryRun bool) (match.Record, error) {
	m := d.Match()
	if err := p.calc.Validate(m); err != nil {
		return match.Record{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	record := p.calc.Finalize(m)
	if dryRun {
		log.Info("[Dry Run] Would save match", "team1", record.Team1, "team2", record.Team2, "winner", record.Winner)
		return record, nil
	}

	record, err := p.store.AddMatch(ctx, record)
	if err != nil {
		return match.Record{}, err
	}
	p.metrics.IncMatchesRecorded()

	if err := p.pubsub.SendMessage(ctx, pubsub.EventMatchRecorded, pubsub.MatchRecorded{Match: record}); err != nil {
		log.Error("Failed to publish match-recorded event", "error", err, "matchID", record.ID)
	}
	if p.inlineNotify {
		if err := p.NotifyResult(ctx, record, false); err != nil {
			log.Error("Failed to send result notification", "error", err, "matchID", record.ID)
		}
	}
	return record, nil
}

// NotifyResult announces a saved match.
func (p *Processor) NotifyResult(ctx context.Context, record match.Record, dryRun bool) error {
	log.Info("Sending result notification", "matchID", record.ID, "winner", record.Winner)
	return p.notifier.SendMatchResult(ctx, record, dryRun)
}

// Leaderboard computes the ranking over every saved match.
func (p *Processor) Leaderboard(ctx context.Context, opts ...leaderboard.Option) ([]leaderboard.TeamStats, error) {
	start := time.Now()
	matches, err := p.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	board := leaderboard.Compute(matches, opts...)
	p.metrics.ObserveLeaderboardDuration(time.Since(start).Seconds())
	log.Debug("Computed leaderboard", "matches", len(matches), "teams", len(board))
	return board, nil
}

// PostLeaderboard computes the current ranking and posts it to the notification channel.
func (p *Processor) PostLeaderboard(ctx context.Context, dryRun bool) ([]leaderboard.TeamStats, error) {
	board, err := p.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.notifier.SendLeaderboard(ctx, board, dryRun); err != nil {
		return nil, fmt.Errorf("failed to post leaderboard: %w", err)
	}
	log.Info("Posted leaderboard", "teams", len(board), "dryRun", dryRun)
	return board, nil
}

// TeamStats looks up one team in the detailed leaderboard. found is false when no team matches query.
func (p *Processor) TeamStats(ctx context.Context, query string) (*leaderboard.TeamStats, bool, error) {
	board, err := p.Leaderboard(ctx, leaderboard.WithSetTotals())
	if err != nil {
		return nil, false, err
	}
	stats, found := leaderboard.Find(board, query)
	return stats, found, nil
}

// ClearMatches deletes every saved match. Deletes run concurrently on a bounded number of
// workers and all of them are awaited before the summary is returned. A non-nil error means
// the matches could not be listed or at least one delete failed; the summary is valid either way.
func (p *Processor) ClearMatches(ctx context.Context, dryRun bool) (DeleteSummary, error) {
	matches, err := p.store.ListMatches(ctx)
	if err != nil {
		return DeleteSummary{Failures: []DeleteFailure{}}, err
	}
	summary := DeleteSummary{Requested: len(matches), Failures: []DeleteFailure{}, DryRun: dryRun}
	if dryRun {
		log.Info("[Dry Run] Would delete matches", "count", len(matches))
		return summary, nil
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(p.deleteWorkers)
	for _, m := range matches {
		id := m.ID
		g.Go(func() error {
			err := p.store.DeleteMatch(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("Failed to delete match", "error", err, "matchID", id)
				summary.Failures = append(summary.Failures, DeleteFailure{ID: id, Error: err.Error()})
				return nil
			}
			summary.Deleted++
			return nil
		})
	}
	g.Wait()
	sort.Slice(summary.Failures, func(i, j int) bool { return summary.Failures[i].ID < summary.Failures[j].ID })

	p.metrics.AddMatchesDeleted(summary.Deleted)
	log.Info("Bulk delete finished", "requested", summary.Requested, "deleted", summary.Deleted, "failed", len(summary.Failures))

	if summary.Deleted > 0 {
		event := pubsub.MatchesCleared{Requested: summary.Requested, Deleted: summary.Deleted, At: time.Now().UTC()}
		if err := p.pubsub.SendMessage(ctx, pubsub.EventMatchesCleared, event); err != nil {
			log.Error("Failed to publish matches-cleared event", "error", err)
		}
		if err := p.notifier.SendMatchesCleared(ctx, summary.Deleted, false); err != nil {
			log.Error("Failed to send matches-cleared notification", "error", err)
		}
	}
	if len(summary.Failures) > 0 {
		return summary, fmt.Errorf("%d of %d matches could not be deleted", len(summary.Failures), summary.Requested)
	}
	return summary, nil
}

// IsValidation reports whether err was caused by invalid input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
