package config

import (
	"testing"
	"time"

	"github.com/mauv0809/teamboard/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(env(map[string]string{"DB_NAME": "teamboard.db"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "deletethis", cfg.Guard.DeleteCode)
	assert.Equal(t, 15*time.Minute, cfg.Guard.TokenTTL)
	assert.Equal(t, 8, cfg.Match.GamesPerMatch)
	assert.Equal(t, match.TieFavorsTeam2, cfg.Match.TiePolicy)
	assert.False(t, cfg.Slack.Enabled())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(env(map[string]string{
		"PORT":             "9000",
		"STORE_BACKEND":    "mongo",
		"MONGO_URI":        "mongodb://localhost:27017",
		"MONGO_DATABASE":   "club",
		"SLACK_BOT_TOKEN":  "xoxb-1",
		"SLACK_CHANNEL_ID": "C1",
		"DELETE_CODE":      "wipe",
		"ADMIN_TOKEN_TTL":  "5m",
		"GAMES_PER_MATCH":  "4",
		"TIE_POLICY":       "points",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, BackendMongo, cfg.Backend)
	assert.Equal(t, "club", cfg.Mongo.Database)
	assert.True(t, cfg.Slack.Enabled())
	assert.Equal(t, "wipe", cfg.Guard.DeleteCode)
	assert.Equal(t, 5*time.Minute, cfg.Guard.TokenTTL)
	assert.Equal(t, 4, cfg.Match.GamesPerMatch)
	assert.Equal(t, match.TieBreakOnPoints, cfg.Match.TiePolicy)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "no sqlite database", vars: map[string]string{}},
		{name: "mongo without uri", vars: map[string]string{"STORE_BACKEND": "mongo"}},
		{name: "unknown backend", vars: map[string]string{"STORE_BACKEND": "postgres", "DB_NAME": "x"}},
		{name: "bad games per match", vars: map[string]string{"DB_NAME": "x", "GAMES_PER_MATCH": "zero"}},
		{name: "negative games per match", vars: map[string]string{"DB_NAME": "x", "GAMES_PER_MATCH": "-2"}},
		{name: "bad ttl", vars: map[string]string{"DB_NAME": "x", "ADMIN_TOKEN_TTL": "soon"}},
		{name: "bad tie policy", vars: map[string]string{"DB_NAME": "x", "TIE_POLICY": "coin-flip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(env(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestParse_TursoWithoutLocalName(t *testing.T) {
	cfg, err := Parse(env(map[string]string{"TURSO_PRIMARY_URL": "libsql://club.turso.io"}))
	require.NoError(t, err)
	assert.Equal(t, "libsql://club.turso.io", cfg.Turso.PrimaryURL)
}
