package club

import (
	"fmt"
	"strings"

	"github.com/go-andiamo/splitter"
)

// memberSplitter splits on commas but keeps quoted names such as "Smith, Jr." intact.
var memberSplitter, _ = splitter.NewSplitter(',', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)

// ParseMembers turns a comma-separated member list into trimmed names, dropping empty entries.
func ParseMembers(raw string) ([]string, error) {
	parts, err := memberSplitter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid member list: %w", err)
	}
	return CleanMembers(parts), nil
}

// CleanMembers trims names, strips surrounding quotes and drops empty entries.
func CleanMembers(names []string) []string {
	members := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		n = strings.Trim(n, "\"“”")
		n = strings.TrimSpace(n)
		if n != "" {
			members = append(members, n)
		}
	}
	return members
}
