package leaderboard

import (
	"sort"

	"github.com/mauv0809/teamboard/internal/match"
)

type accumulator struct {
	stats         TeamStats
	pointsFor     int
	pointsAgainst int
}

// Compute derives the leaderboard from every persisted match. The result is ordered by wins,
// descending; teams with equal wins keep the order in which they were first seen.
func Compute(matches []match.Record, opts ...Option) []TeamStats {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]*accumulator)
	var order []string
	entry := func(name string) *accumulator {
		acc, ok := index[name]
		if !ok {
			acc = &accumulator{stats: TeamStats{Name: name}}
			index[name] = acc
			order = append(order, name)
		}
		return acc
	}

	for _, m := range matches {
		team1 := entry(match.Label(m.Team1, match.Team1))
		team2 := entry(match.Label(m.Team2, match.Team2))

		if m.Winner != "" {
			entry(m.Winner).stats.Wins++
		}

		for _, g := range m.Games {
			switch g.Winner {
			case "":
			case team1.stats.Name:
				team1.stats.HeadToHeadWins++
				team1.stats.GamesWon++
			case team2.stats.Name:
				team2.stats.HeadToHeadWins++
				team2.stats.GamesWon++
			}
		}

		if o.setTotals {
			team1.stats.SetsWon += m.SetsWon[0]
			team2.stats.SetsWon += m.SetsWon[1]
			team1.pointsFor += m.Points[0]
			team1.pointsAgainst += m.Points[1]
			team2.pointsFor += m.Points[1]
			team2.pointsAgainst += m.Points[0]
		}
	}

	board := make([]TeamStats, 0, len(order))
	for _, name := range order {
		acc := index[name]
		if o.setTotals && acc.pointsAgainst > 0 {
			acc.stats.PointsRatio = float64(acc.pointsFor) / float64(acc.pointsAgainst)
		}
		board = append(board, acc.stats)
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Wins > board[j].Wins
	})
	return board
}
