package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoToken(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	err := notifier.SendMatchesCleared(context.Background(), 3, false)
	require.NoError(t, err, "without a token messages are only logged")
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendLeaderboard(context.Background(), nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatMatchResult(t *testing.T) {
	record := match.Record{
		ID:      "m1",
		Team1:   "Team A",
		Team2:   "",
		Winner:  "Team A",
		SetsWon: [2]int{2, 1},
		Points:  [2]int{57, 45},
		Games: []match.Game{{
			Team1Players: [2]string{"Alice", "Bob"},
			Team2Players: [2]string{"Carl", ""},
			Score:        [3]match.SetScore{{21, 15}, {15, 21}, {21, 9}},
			Winner:       "Team A",
		}},
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatMatchResult(record)
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Contains(t, header.Text.Text, "Match recorded")

	summary, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Team A* beat *Team 2*\nSets: 2-1 | Points: 57-45", summary.Text.Text)

	games, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Game 1: Alice & Bob vs Carl | 21-15, 15-21, 21-9 | Team A", games.Text.Text)

	_, ok = msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	assert.True(t, ok, "Last block should carry the match id")
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("empty", func(t *testing.T) {
		msg := client.formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "No match data available yet.", section.Text.Text)
	})

	t.Run("ranked", func(t *testing.T) {
		msg := client.formatLeaderboard([]leaderboard.TeamStats{
			{Name: "Team A", Wins: 2, GamesWon: 12, HeadToHeadWins: 12},
			{Name: "Team B", Wins: 1, GamesWon: 4, HeadToHeadWins: 4},
		})
		require.Len(t, msg.Blocks.BlockSet, 3)
		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. :first_place_medal: Team A\n> Wins: 2 | Games Won: 12 | Head-to-Head Wins: 12", first.Text.Text)
	})
}

func TestFormatTeamStats(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	stats := &leaderboard.TeamStats{Name: "Team A", Wins: 1, GamesWon: 8, HeadToHeadWins: 8, SetsWon: 16, PointsRatio: 1.27}

	exact := client.formatTeamStats(stats, "team a")
	assert.Len(t, exact.Blocks.BlockSet, 2)

	fuzzy := client.formatTeamStats(stats, "tma")
	require.Len(t, fuzzy.Blocks.BlockSet, 3, "a fuzzy hit notes the original query")
	section := fuzzy.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Contains(t, section.Text.Text, "*Points Ratio*: 1.27")
}

func TestFormatTeamNotFound(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatTeamNotFound("zzz")
	require.Len(t, msg.Blocks.BlockSet, 1)
	section := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, "Sorry, I couldn't find a team matching *zzz*. Try a different name.", section.Text.Text)
}
