package leaderboard

// TeamStats is one row of the leaderboard.
type TeamStats struct {
	Name           string  `json:"name"`
	Wins           int     `json:"wins"`
	GamesWon       int     `json:"gamesWon"`
	HeadToHeadWins int     `json:"headToHeadWins"`
	SetsWon        int     `json:"setsWon"`
	PointsRatio    float64 `json:"pointsRatio"`
}

type options struct {
	setTotals bool
}

type Option func(*options)

// WithSetTotals fills SetsWon and PointsRatio from the per-match tallies stored at save time.
// Without it both fields stay zero.
func WithSetTotals() Option {
	return func(o *options) {
		o.setTotals = true
	}
}
