package config

import (
	"time"

	"github.com/mauv0809/teamboard/internal/match"
)

const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string
	Backend   string
	DBName    string
	Turso     TursoConfig
	Mongo     MongoConfig
	Slack     SlackConfig
	ProjectID string
	Guard     GuardConfig
	Match     MatchConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether result notifications can be posted.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type GuardConfig struct {
	DeleteCode  string
	TokenSecret string
	TokenTTL    time.Duration
}

type MatchConfig struct {
	GamesPerMatch int
	TiePolicy     match.TiePolicy
}
