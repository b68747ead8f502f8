package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is only logged.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	n := &Notifier{
		channelID: channelID,
		metrics:   metrics,
	}
	if token != "" {
		n.api = slack.New(token)
	}
	return n
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(ctx context.Context, record match.Record, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchResult(record), dryRun)
	return err
}

func (s *Notifier) SendMatchesCleared(ctx context.Context, deleted int, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchesCleared(deleted), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, stats []leaderboard.TeamStats, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatLeaderboard(stats), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(stats []leaderboard.TeamStats) (any, error) {
	return s.formatLeaderboard(stats), nil
}

// FormatTeamStatsResponse formats a team stats message for a slash command response.
func (s *Notifier) FormatTeamStatsResponse(stats *leaderboard.TeamStats, query string) (any, error) {
	return s.formatTeamStats(stats, query), nil
}

// FormatTeamNotFoundResponse formats a team not found message for a slash command response.
func (s *Notifier) FormatTeamNotFoundResponse(query string) (any, error) {
	return s.formatTeamNotFound(query), nil
}

func (s *Notifier) formatMatchResult(record match.Record) slack.Message {
	blocks := make([]slack.Block, 0)

	team1, team2 := match.Label(record.Team1, match.Team1), match.Label(record.Team2, match.Team2)
	loser := team1
	if record.Winner == team1 {
		loser = team2
	}

	headerText := slack.NewTextBlockObject("plain_text", ":trophy: Match recorded :trophy:", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	summary := fmt.Sprintf("*%s* beat *%s*\nSets: %d-%d | Points: %d-%d",
		record.Winner, loser,
		record.SetsWon[0], record.SetsWon[1],
		record.Points[0], record.Points[1],
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil))

	lines := make([]string, 0, len(record.Games))
	for i, g := range record.Games {
		sets := make([]string, 0, len(g.Score))
		for _, set := range g.Score {
			sets = append(sets, fmt.Sprintf("%d-%d", set.Team1(), set.Team2()))
		}
		winner := g.Winner
		if winner == "" {
			winner = "draw"
		}
		lines = append(lines, fmt.Sprintf("Game %d: %s vs %s | %s | %s",
			i+1, pair(g.Team1Players), pair(g.Team2Players), strings.Join(sets, ", "), winner))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	if record.ID != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", "Match ID: "+record.ID, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatMatchesCleared(deleted int) slack.Message {
	text := fmt.Sprintf(":wastebasket: %d matches were deleted. The leaderboard starts over.", deleted)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func (s *Notifier) formatLeaderboard(stats []leaderboard.TeamStats) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", ":trophy: Team Leaderboard :trophy:", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No match data available yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range stats {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = ":first_place_medal:"
		case 2:
			medal = ":second_place_medal:"
		case 3:
			medal = ":third_place_medal:"
		}

		teamText := fmt.Sprintf("%d. %s %s\n> Wins: %d | Games Won: %d | Head-to-Head Wins: %d",
			rank,
			medal,
			stat.Name,
			stat.Wins,
			stat.GamesWon,
			stat.HeadToHeadWins,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", teamText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatTeamStats(stat *leaderboard.TeamStats, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf(":bar_chart: Stats for %s", stat.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	teamText := fmt.Sprintf("> *Wins*: %d\n> *Games Won*: %d\n> *Head-to-Head Wins*: %d\n> *Sets Won*: %d\n> *Points Ratio*: %.2f",
		stat.Wins,
		stat.GamesWon,
		stat.HeadToHeadWins,
		stat.SetsWon,
		stat.PointsRatio,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", teamText, false, false), nil, nil))

	if !strings.EqualFold(strings.TrimSpace(query), stat.Name) {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Closest match for %q", query), false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatTeamNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a team matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func pair(players [match.PlayersPerSide]string) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		if p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		return "?"
	}
	return strings.Join(names, " & ")
}
