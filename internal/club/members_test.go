package club_test

import (
	"testing"

	"github.com/mauv0809/teamboard/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMembers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "simple list", raw: "Ann, Bob,Cat", want: []string{"Ann", "Bob", "Cat"}},
		{name: "empty entries dropped", raw: "Ann,, ,Bob,", want: []string{"Ann", "Bob"}},
		{name: "quoted name keeps comma", raw: `"Smith, Jr.",Bob`, want: []string{"Smith, Jr.", "Bob"}},
		{name: "empty input", raw: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := club.ParseMembers(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unbalanced quote", func(t *testing.T) {
		_, err := club.ParseMembers(`"Ann, Bob`)
		assert.Error(t, err)
	})
}

func TestCleanMembers(t *testing.T) {
	got := club.CleanMembers([]string{"  Ann ", "", "“Bob”", "   "})
	assert.Equal(t, []string{"Ann", "Bob"}, got)
}
