package leaderboard

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Find looks up a team in a computed leaderboard by name. An exact, case-insensitive match wins;
// otherwise the closest fuzzy match is returned.
func Find(board []TeamStats, query string) (*TeamStats, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	names := make([]string, len(board))
	for i, s := range board {
		if strings.EqualFold(s.Name, query) {
			return &board[i], true
		}
		names[i] = s.Name
	}

	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) == 0 {
		return nil, false
	}
	sort.Sort(ranks)
	return &board[ranks[0].OriginalIndex], true
}
