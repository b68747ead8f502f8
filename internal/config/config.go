package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/teamboard/internal/guard"
	"github.com/mauv0809/teamboard/internal/match"
)

// Load reads configuration from environment variables and .env file.
// It exits the process when the configuration is invalid.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from lookup, which has the signature of os.LookupEnv.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		Port:    get("PORT", "8080"),
		Backend: get("STORE_BACKEND", BackendSQLite),
		DBName:  get("DB_NAME", ""),
		Turso: TursoConfig{
			PrimaryURL: get("TURSO_PRIMARY_URL", ""),
			AuthToken:  get("TURSO_AUTH_TOKEN", ""),
		},
		Mongo: MongoConfig{
			URI:      get("MONGO_URI", ""),
			Database: get("MONGO_DATABASE", "teamboard"),
		},
		Slack: SlackConfig{
			Token:         get("SLACK_BOT_TOKEN", ""),
			ChannelID:     get("SLACK_CHANNEL_ID", ""),
			SigningSecret: get("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID: get("GCP_PROJECT", ""),
		Guard: GuardConfig{
			DeleteCode:  get("DELETE_CODE", guard.DefaultCode),
			TokenSecret: get("ADMIN_TOKEN_SECRET", ""),
			TokenTTL:    guard.DefaultTokenTTL,
		},
		Match: MatchConfig{
			GamesPerMatch: match.DefaultGamesPerMatch,
			TiePolicy:     match.TiePolicy(get("TIE_POLICY", string(match.TieFavorsTeam2))),
		},
	}

	switch cfg.Backend {
	case BackendSQLite:
		if cfg.DBName == "" && cfg.Turso.PrimaryURL == "" {
			return Config{}, fmt.Errorf("required environment variable DB_NAME or TURSO_PRIMARY_URL is not set")
		}
	case BackendMongo:
		if cfg.Mongo.URI == "" {
			return Config{}, fmt.Errorf("required environment variable MONGO_URI is not set")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	if raw := get("ADMIN_TOKEN_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid ADMIN_TOKEN_TTL %q", raw)
		}
		cfg.Guard.TokenTTL = ttl
	}
	if raw := get("GAMES_PER_MATCH", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid GAMES_PER_MATCH %q", raw)
		}
		cfg.Match.GamesPerMatch = n
	}
	if p := cfg.Match.TiePolicy; p != match.TieFavorsTeam2 && p != match.TieBreakOnPoints {
		return Config{}, fmt.Errorf("unknown TIE_POLICY %q", p)
	}
	return cfg, nil
}
