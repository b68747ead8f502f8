package match

import (
	"errors"
	"fmt"
)

var (
	ErrGameCount     = errors.New("wrong number of games")
	ErrNegativeScore = errors.New("score cannot be negative")
	ErrSameTeam      = errors.New("a team cannot play against itself")
	ErrReservedName  = errors.New("team name is reserved for an absent team")
)

// Calculator derives match outcomes. The zero value is not usable; use NewCalculator.
type Calculator struct {
	gamesPerMatch int
	tiePolicy     TiePolicy
}

type Option func(*Calculator)

func WithGamesPerMatch(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.gamesPerMatch = n
		}
	}
}

func WithTiePolicy(p TiePolicy) Option {
	return func(c *Calculator) {
		if p == TieFavorsTeam2 || p == TieBreakOnPoints {
			c.tiePolicy = p
		}
	}
}

func NewCalculator(opts ...Option) Calculator {
	c := Calculator{
		gamesPerMatch: DefaultGamesPerMatch,
		tiePolicy:     TieFavorsTeam2,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Calculator) GamesPerMatch() int   { return c.gamesPerMatch }
func (c Calculator) TiePolicy() TiePolicy { return c.tiePolicy }

// Validate reports structural problems that make a match unfit for saving.
func (c Calculator) Validate(m Match) error {
	if len(m.Games) != c.gamesPerMatch {
		return fmt.Errorf("%w: got %d, want %d", ErrGameCount, len(m.Games), c.gamesPerMatch)
	}
	if m.Team1 != "" && m.Team1 == m.Team2 {
		return ErrSameTeam
	}
	for _, name := range []string{m.Team1, m.Team2} {
		if IsPlaceholder(name) {
			return fmt.Errorf("%w: %q", ErrReservedName, name)
		}
	}
	for i, g := range m.Games {
		for j, s := range g.Score {
			if s.Team1() < 0 || s.Team2() < 0 {
				return fmt.Errorf("%w: game %d set %d", ErrNegativeScore, i+1, j+1)
			}
		}
	}
	return nil
}

// Determine computes the outcome of a match. It never fails: missing teams fall back to
// placeholder labels and a match without a set leader is resolved by the tie policy.
func (c Calculator) Determine(m Match) Outcome {
	team1, team2 := Label(m.Team1, Team1), Label(m.Team2, Team2)
	out := Outcome{GameWinners: make([]string, len(m.Games))}

	for i, g := range m.Games {
		var gameSets [2]int
		for _, s := range g.Score {
			if side, ok := setWinner(s); ok {
				gameSets[side.index()]++
				out.SetsWon[side.index()]++
			}
			out.Points[0] += s.Team1()
			out.Points[1] += s.Team2()
		}
		switch {
		case gameSets[0] > gameSets[1]:
			out.GameWinners[i] = team1
		case gameSets[1] > gameSets[0]:
			out.GameWinners[i] = team2
		}
	}

	out.Winner = team2
	switch {
	case out.SetsWon[0] > out.SetsWon[1]:
		out.Winner = team1
	case out.SetsWon[0] == out.SetsWon[1] && c.tiePolicy == TieBreakOnPoints && out.Points[0] > out.Points[1]:
		out.Winner = team1
	}
	return out
}

// Finalize turns a match into a record ready to be persisted, with game winners filled in.
func (c Calculator) Finalize(m Match) Record {
	out := c.Determine(m)
	games := make([]Game, len(m.Games))
	copy(games, m.Games)
	for i := range games {
		games[i].Winner = out.GameWinners[i]
	}
	return Record{
		Team1:   m.Team1,
		Team2:   m.Team2,
		Games:   games,
		Winner:  out.Winner,
		SetsWon: out.SetsWon,
		Points:  out.Points,
	}
}

func setWinner(s SetScore) (Side, bool) {
	switch {
	case s.Team1() > s.Team2():
		return Team1, true
	case s.Team2() > s.Team1():
		return Team2, true
	}
	return 0, false
}
