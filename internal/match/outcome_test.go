package match_test

import (
	"testing"

	"github.com/mauv0809/teamboard/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// games builds n games that all share the same three set scores.
func games(n int, sets ...match.SetScore) []match.Game {
	out := make([]match.Game, n)
	for i := range out {
		copy(out[i].Score[:], sets)
	}
	return out
}

func TestDetermine_Team1WinsEverySet(t *testing.T) {
	calc := match.NewCalculator()
	m := match.Match{
		Team1: "Team A",
		Team2: "Team B",
		Games: games(8, match.SetScore{21, 15}, match.SetScore{21, 18}, match.SetScore{0, 0}),
	}

	out := calc.Determine(m)

	assert.Equal(t, "Team A", out.Winner)
	assert.Equal(t, [2]int{16, 0}, out.SetsWon)
	assert.Equal(t, [2]int{8 * 42, 8 * 33}, out.Points)
	require.Len(t, out.GameWinners, 8)
	for _, w := range out.GameWinners {
		assert.Equal(t, "Team A", w)
	}
}

func TestDetermine_TiePolicies(t *testing.T) {
	// One set each per game, team 1 scores more points overall.
	tied := match.Match{
		Team1: "Team A",
		Team2: "Team B",
		Games: games(8, match.SetScore{21, 5}, match.SetScore{19, 21}, match.SetScore{0, 0}),
	}

	t.Run("default favors team 2", func(t *testing.T) {
		out := match.NewCalculator().Determine(tied)
		assert.Equal(t, [2]int{8, 8}, out.SetsWon)
		assert.Equal(t, "Team B", out.Winner)
	})

	t.Run("points policy breaks on total points", func(t *testing.T) {
		out := match.NewCalculator(match.WithTiePolicy(match.TieBreakOnPoints)).Determine(tied)
		assert.Equal(t, "Team A", out.Winner)
	})

	t.Run("points policy still favors team 2 on equal points", func(t *testing.T) {
		allZero := match.Match{Team1: "Team A", Team2: "Team B", Games: games(8)}
		out := match.NewCalculator(match.WithTiePolicy(match.TieBreakOnPoints)).Determine(allZero)
		assert.Equal(t, "Team B", out.Winner)
	})

	t.Run("tied games have no winner", func(t *testing.T) {
		out := match.NewCalculator().Determine(tied)
		for _, w := range out.GameWinners {
			assert.Empty(t, w)
		}
	})
}

func TestDetermine_MissingTeamsUsePlaceholders(t *testing.T) {
	calc := match.NewCalculator()

	out := calc.Determine(match.Match{Games: games(8)})
	assert.Equal(t, "Team 2", out.Winner)

	out = calc.Determine(match.Match{Team2: "Team B", Games: games(8, match.SetScore{3, 1})})
	assert.Equal(t, "Team 1", out.Winner)
	assert.Equal(t, "Team 1", out.GameWinners[0])
}

func TestDetermine_NoGames(t *testing.T) {
	out := match.NewCalculator().Determine(match.Match{Team1: "A", Team2: "B"})
	assert.Equal(t, "B", out.Winner)
	assert.Empty(t, out.GameWinners)
}

func TestFinalize(t *testing.T) {
	calc := match.NewCalculator(match.WithGamesPerMatch(2))
	m := match.Match{
		Team1: "Team A",
		Team2: "Team B",
		Games: []match.Game{
			{Score: [3]match.SetScore{{21, 10}, {21, 10}, {0, 0}}},
			{Score: [3]match.SetScore{{10, 21}, {21, 10}, {5, 21}}},
		},
	}

	rec := calc.Finalize(m)

	assert.Equal(t, "Team A", rec.Winner)
	assert.Equal(t, [2]int{3, 2}, rec.SetsWon)
	assert.Equal(t, "Team A", rec.Games[0].Winner)
	assert.Equal(t, "Team B", rec.Games[1].Winner)
	assert.Empty(t, m.Games[0].Winner, "input games must not be modified")
}

func TestValidate(t *testing.T) {
	calc := match.NewCalculator(match.WithGamesPerMatch(2))

	assert.NoError(t, calc.Validate(match.Match{Team1: "A", Team2: "B", Games: games(2)}))
	assert.ErrorIs(t, calc.Validate(match.Match{Team1: "A", Team2: "B", Games: games(3)}), match.ErrGameCount)
	assert.ErrorIs(t, calc.Validate(match.Match{Team1: "A", Team2: "A", Games: games(2)}), match.ErrSameTeam)
	assert.ErrorIs(t, calc.Validate(match.Match{Team1: "A", Team2: "B", Games: games(2, match.SetScore{-1, 0})}), match.ErrNegativeScore)

	t.Run("placeholder names are reserved", func(t *testing.T) {
		assert.ErrorIs(t, calc.Validate(match.Match{Team2: "Team 1", Games: games(2)}), match.ErrReservedName)
		assert.ErrorIs(t, calc.Validate(match.Match{Team1: "team 2", Games: games(2)}), match.ErrReservedName)
		assert.NoError(t, calc.Validate(match.Match{Team2: "B", Games: games(2)}), "an absent side is fine")
	})
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, match.IsPlaceholder("Team 1"))
	assert.True(t, match.IsPlaceholder(" TEAM 2 "))
	assert.False(t, match.IsPlaceholder("Team 3"))
	assert.False(t, match.IsPlaceholder(""))
}

func TestNewCalculator_IgnoresInvalidOptions(t *testing.T) {
	calc := match.NewCalculator(match.WithGamesPerMatch(0), match.WithTiePolicy("coin-flip"))
	assert.Equal(t, match.DefaultGamesPerMatch, calc.GamesPerMatch())
	assert.Equal(t, match.TieFavorsTeam2, calc.TiePolicy())
}
