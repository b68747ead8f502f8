package draft_test

import (
	"testing"

	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/draft"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamA = club.Team{ID: "a", Name: "Team A", Members: []string{"Alice", "Bob"}}
	teamB = club.Team{ID: "b", Name: "Team B", Members: []string{"Carl", "Dave"}}
)

func TestNew(t *testing.T) {
	d := draft.New(8)
	assert.Len(t, d.Games, 8)
	assert.Nil(t, d.Team(match.Team1))

	assert.Len(t, draft.New(0).Games, match.DefaultGamesPerMatch, "non-positive counts fall back to the default")
}

func TestReduce_SelectTeam(t *testing.T) {
	d := draft.New(2)
	d, err := draft.Reduce(d, draft.SelectTeam{Side: match.Team1, Team: teamA})
	require.NoError(t, err)
	require.NotNil(t, d.Team(match.Team1))
	assert.Equal(t, "Team A", d.Team(match.Team1).Name)

	t.Run("clears the side's players", func(t *testing.T) {
		withPlayer, err := draft.Reduce(d, draft.SelectPlayer{Game: 1, Side: match.Team1, Slot: 0, Player: "Alice"})
		require.NoError(t, err)

		reselected, err := draft.Reduce(withPlayer, draft.SelectTeam{Side: match.Team1, Team: teamB})
		require.NoError(t, err)
		assert.Empty(t, reselected.Games[1].Team1Players[0])
		assert.Equal(t, "Alice", withPlayer.Games[1].Team1Players[0], "input draft must not change")
	})

	t.Run("invalid side", func(t *testing.T) {
		_, err := draft.Reduce(d, draft.SelectTeam{Side: 3, Team: teamB})
		assert.ErrorIs(t, err, draft.ErrInvalidSide)
	})
}

func TestReduce_ClearTeam(t *testing.T) {
	d, err := draft.Apply(draft.New(1),
		draft.SelectTeam{Side: match.Team2, Team: teamB},
		draft.SelectPlayer{Game: 0, Side: match.Team2, Slot: 1, Player: "Dave"},
		draft.ClearTeam{Side: match.Team2},
	)
	require.NoError(t, err)
	assert.Nil(t, d.Team(match.Team2))
	assert.Empty(t, d.Games[0].Team2Players[1])
}

func TestReduce_SelectPlayer(t *testing.T) {
	d, err := draft.Reduce(draft.New(2), draft.SelectTeam{Side: match.Team1, Team: teamA})
	require.NoError(t, err)

	tests := []struct {
		name    string
		action  draft.SelectPlayer
		wantErr error
	}{
		{name: "member", action: draft.SelectPlayer{Game: 0, Side: match.Team1, Slot: 0, Player: "Alice"}},
		{name: "clear slot", action: draft.SelectPlayer{Game: 0, Side: match.Team2, Slot: 0, Player: ""}},
		{name: "not a member", action: draft.SelectPlayer{Game: 0, Side: match.Team1, Slot: 0, Player: "Carl"}, wantErr: draft.ErrNotMember},
		{name: "no team on side", action: draft.SelectPlayer{Game: 0, Side: match.Team2, Slot: 0, Player: "Carl"}, wantErr: draft.ErrNoTeam},
		{name: "game out of range", action: draft.SelectPlayer{Game: 2, Side: match.Team1, Slot: 0, Player: "Alice"}, wantErr: draft.ErrOutOfRange},
		{name: "slot out of range", action: draft.SelectPlayer{Game: 0, Side: match.Team1, Slot: 2, Player: "Alice"}, wantErr: draft.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := draft.Reduce(d, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, d, got, "failed reductions return the input draft")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReduce_SetScore(t *testing.T) {
	d := draft.New(1)

	d, err := draft.Apply(d,
		draft.SetScore{Game: 0, Set: 0, Side: match.Team1, Value: 21},
		draft.SetScore{Game: 0, Set: 0, Side: match.Team2, Value: 15},
	)
	require.NoError(t, err)
	assert.Equal(t, match.SetScore{21, 15}, d.Games[0].Score[0], "each side writes its own slot")

	_, err = draft.Reduce(d, draft.SetScore{Game: 0, Set: 0, Side: match.Team1, Value: -1})
	assert.ErrorIs(t, err, draft.ErrInvalidScore)

	_, err = draft.Reduce(d, draft.SetScore{Game: 0, Set: 3, Side: match.Team1, Value: 1})
	assert.ErrorIs(t, err, draft.ErrOutOfRange)
}

func TestReduce_NilAction(t *testing.T) {
	_, err := draft.Reduce(draft.New(1), nil)
	assert.ErrorIs(t, err, draft.ErrUnknown)
}

func TestActionsAndMatch(t *testing.T) {
	games := make([]match.Game, 8)
	for i := range games {
		games[i] = match.Game{
			Team1Players: [2]string{"Alice", "Bob"},
			Team2Players: [2]string{"Carl", "Dave"},
			Score:        [3]match.SetScore{{21, 15}, {21, 18}, {0, 0}},
		}
	}

	d, err := draft.Apply(draft.New(8), draft.Actions(&teamA, &teamB, games)...)
	require.NoError(t, err)

	m := d.Match()
	assert.Equal(t, "Team A", m.Team1)
	assert.Equal(t, "Team B", m.Team2)
	assert.Equal(t, games, m.Games)

	out := match.NewCalculator().Determine(m)
	assert.Equal(t, "Team A", out.Winner)

	t.Run("missing team leaves side empty", func(t *testing.T) {
		noPlayers := []match.Game{{Score: [3]match.SetScore{{1, 2}}}}
		d, err := draft.Apply(draft.New(1), draft.Actions(nil, &teamB, noPlayers)...)
		require.NoError(t, err)
		assert.Empty(t, d.Match().Team1)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		bad := []match.Game{{Team1Players: [2]string{"Mallory", ""}}}
		_, err := draft.Apply(draft.New(1), draft.Actions(&teamA, &teamB, bad)...)
		assert.ErrorIs(t, err, draft.ErrNotMember)
	})
}
