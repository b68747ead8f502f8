// Package draft holds the match a user is entering before it is saved.
// A Draft is a plain value; every change goes through Reduce, which returns a new Draft.
package draft

import (
	"errors"
	"fmt"

	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/match"
)

var (
	ErrInvalidSide  = errors.New("invalid side")
	ErrOutOfRange   = errors.New("index out of range")
	ErrNoTeam       = errors.New("no team selected for this side")
	ErrNotMember    = errors.New("player is not a member of the selected team")
	ErrInvalidScore = errors.New("score must be a non-negative number")
	ErrUnknown      = errors.New("unknown action")
)

// Draft is an in-progress match: the team picked for each side and the games entered so far.
type Draft struct {
	Teams [2]*club.Team `json:"teams"`
	Games []match.Game  `json:"games"`
}

// New returns an empty draft with gamesPerMatch blank games.
func New(gamesPerMatch int) Draft {
	if gamesPerMatch <= 0 {
		gamesPerMatch = match.DefaultGamesPerMatch
	}
	return Draft{Games: make([]match.Game, gamesPerMatch)}
}

// Team returns the team selected for side, or nil.
func (d Draft) Team(side match.Side) *club.Team {
	if !side.Valid() {
		return nil
	}
	return d.Teams[side-1]
}

// Match converts the draft into calculator input.
func (d Draft) Match() match.Match {
	m := match.Match{Games: make([]match.Game, len(d.Games))}
	copy(m.Games, d.Games)
	if t := d.Teams[0]; t != nil {
		m.Team1 = t.Name
	}
	if t := d.Teams[1]; t != nil {
		m.Team2 = t.Name
	}
	return m
}

func (d Draft) clone() Draft {
	out := Draft{Teams: d.Teams, Games: make([]match.Game, len(d.Games))}
	copy(out.Games, d.Games)
	return out
}

// Action is a single edit of a draft.
type Action interface {
	apply(d Draft) (Draft, error)
}

// Reduce applies action to a copy of d. On error the returned draft is d unchanged.
func Reduce(d Draft, action Action) (Draft, error) {
	if action == nil {
		return d, ErrUnknown
	}
	next, err := action.apply(d.clone())
	if err != nil {
		return d, err
	}
	return next, nil
}

// SelectTeam picks the team playing on Side and clears that side's player slots.
type SelectTeam struct {
	Side match.Side
	Team club.Team
}

func (a SelectTeam) apply(d Draft) (Draft, error) {
	if !a.Side.Valid() {
		return d, fmt.Errorf("%w: %d", ErrInvalidSide, a.Side)
	}
	team := a.Team
	team.Members = append([]string(nil), a.Team.Members...)
	d.Teams[a.Side-1] = &team
	clearPlayers(d.Games, a.Side)
	return d, nil
}

// ClearTeam removes the team on Side together with its player picks.
type ClearTeam struct {
	Side match.Side
}

func (a ClearTeam) apply(d Draft) (Draft, error) {
	if !a.Side.Valid() {
		return d, fmt.Errorf("%w: %d", ErrInvalidSide, a.Side)
	}
	d.Teams[a.Side-1] = nil
	clearPlayers(d.Games, a.Side)
	return d, nil
}

// SelectPlayer fills one player slot of a game. An empty Player clears the slot.
type SelectPlayer struct {
	Game   int
	Side   match.Side
	Slot   int
	Player string
}

func (a SelectPlayer) apply(d Draft) (Draft, error) {
	if !a.Side.Valid() {
		return d, fmt.Errorf("%w: %d", ErrInvalidSide, a.Side)
	}
	if a.Game < 0 || a.Game >= len(d.Games) {
		return d, fmt.Errorf("%w: game %d", ErrOutOfRange, a.Game)
	}
	if a.Slot < 0 || a.Slot >= match.PlayersPerSide {
		return d, fmt.Errorf("%w: slot %d", ErrOutOfRange, a.Slot)
	}
	if a.Player != "" {
		team := d.Team(a.Side)
		if team == nil {
			return d, ErrNoTeam
		}
		if !team.HasMember(a.Player) {
			return d, fmt.Errorf("%w: %s not in %s", ErrNotMember, a.Player, team.Name)
		}
	}
	g := &d.Games[a.Game]
	if a.Side == match.Team1 {
		g.Team1Players[a.Slot] = a.Player
	} else {
		g.Team2Players[a.Slot] = a.Player
	}
	return d, nil
}

// SetScore records one side's score in one set of a game.
type SetScore struct {
	Game  int
	Set   int
	Side  match.Side
	Value int
}

func (a SetScore) apply(d Draft) (Draft, error) {
	if !a.Side.Valid() {
		return d, fmt.Errorf("%w: %d", ErrInvalidSide, a.Side)
	}
	if a.Game < 0 || a.Game >= len(d.Games) {
		return d, fmt.Errorf("%w: game %d", ErrOutOfRange, a.Game)
	}
	if a.Set < 0 || a.Set >= match.SetsPerGame {
		return d, fmt.Errorf("%w: set %d", ErrOutOfRange, a.Set)
	}
	if a.Value < 0 {
		return d, fmt.Errorf("%w: %d", ErrInvalidScore, a.Value)
	}
	d.Games[a.Game].Score[a.Set][a.Side-1] = a.Value
	return d, nil
}

func clearPlayers(games []match.Game, side match.Side) {
	for i := range games {
		if side == match.Team1 {
			games[i].Team1Players = [match.PlayersPerSide]string{}
		} else {
			games[i].Team2Players = [match.PlayersPerSide]string{}
		}
	}
}

// Apply reduces actions in order and stops at the first error.
func Apply(d Draft, actions ...Action) (Draft, error) {
	for i, a := range actions {
		next, err := Reduce(d, a)
		if err != nil {
			return d, fmt.Errorf("action %d: %w", i+1, err)
		}
		d = next
	}
	return d, nil
}

// Actions expands a fully entered match into the edits a user would make to enter it.
// Teams must be resolved by the caller; a nil team leaves that side unselected.
func Actions(team1, team2 *club.Team, games []match.Game) []Action {
	var actions []Action
	if team1 != nil {
		actions = append(actions, SelectTeam{Side: match.Team1, Team: *team1})
	}
	if team2 != nil {
		actions = append(actions, SelectTeam{Side: match.Team2, Team: *team2})
	}
	for gi, g := range games {
		for slot := 0; slot < match.PlayersPerSide; slot++ {
			actions = append(actions,
				SelectPlayer{Game: gi, Side: match.Team1, Slot: slot, Player: g.Team1Players[slot]},
				SelectPlayer{Game: gi, Side: match.Team2, Slot: slot, Player: g.Team2Players[slot]},
			)
		}
		for si, s := range g.Score {
			actions = append(actions,
				SetScore{Game: gi, Set: si, Side: match.Team1, Value: s.Team1()},
				SetScore{Game: gi, Set: si, Side: match.Team2, Value: s.Team2()},
			)
		}
	}
	return actions
}
