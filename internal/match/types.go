package match

import (
	"strings"
	"time"
)

const (
	// DefaultGamesPerMatch is the number of games played in a match unless configured otherwise.
	DefaultGamesPerMatch = 8
	SetsPerGame          = 3
	PlayersPerSide       = 2
)

// Side identifies one of the two teams of a match.
type Side int

const (
	Team1 Side = 1
	Team2 Side = 2
)

func (s Side) Valid() bool {
	return s == Team1 || s == Team2
}

// index returns the position of the side in two-element tallies.
func (s Side) index() int {
	return int(s) - 1
}

// TiePolicy decides the match winner when both teams won the same number of sets.
type TiePolicy string

const (
	// TieFavorsTeam2 hands a tied match to team 2.
	TieFavorsTeam2 TiePolicy = "favor-team2"
	// TieBreakOnPoints compares total points first and only then falls back to team 2.
	TieBreakOnPoints TiePolicy = "points"
)

// SetScore holds the score of one set as (team1, team2).
type SetScore [2]int

func (s SetScore) Team1() int { return s[0] }
func (s SetScore) Team2() int { return s[1] }

// Game is one sub-contest of a match, played over three sets.
type Game struct {
	Team1Players [PlayersPerSide]string `json:"team1Players" bson:"team1_players" msgpack:"team1_players"`
	Team2Players [PlayersPerSide]string `json:"team2Players" bson:"team2_players" msgpack:"team2_players"`
	Score        [SetsPerGame]SetScore  `json:"score" bson:"score" msgpack:"score"`
	Winner       string                 `json:"winner,omitempty" bson:"winner,omitempty" msgpack:"winner,omitempty"`
}

// Match is the calculator input: two team names and the games played between them.
// An empty team name means the team was not selected.
type Match struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	Games []Game `json:"games"`
}

// Outcome is the derived result of a match.
type Outcome struct {
	Winner      string   `json:"winner"`
	SetsWon     [2]int   `json:"setsWon"`
	Points      [2]int   `json:"points"`
	GameWinners []string `json:"gameWinners"`
}

// Record is a persisted match.
type Record struct {
	ID        string    `json:"id" bson:"_id" msgpack:"id"`
	Team1     string    `json:"team1" bson:"team1,omitempty" msgpack:"team1"`
	Team2     string    `json:"team2" bson:"team2,omitempty" msgpack:"team2"`
	Games     []Game    `json:"games" bson:"games" msgpack:"games"`
	Winner    string    `json:"winner" bson:"winner" msgpack:"winner"`
	SetsWon   [2]int    `json:"setsWon" bson:"sets_won" msgpack:"sets_won"`
	Points    [2]int    `json:"points" bson:"points" msgpack:"points"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" msgpack:"created_at"`
}

// Label returns the display name of a side, falling back to "Team 1"/"Team 2" when the team is absent.
func Label(name string, side Side) string {
	if name != "" {
		return name
	}
	if side == Team1 {
		return "Team 1"
	}
	return "Team 2"
}

// IsPlaceholder reports whether name, ignoring case, is one of the labels used for an absent team.
// Such names cannot be registered.
func IsPlaceholder(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, Label("", Team1)) || strings.EqualFold(name, Label("", Team2))
}
