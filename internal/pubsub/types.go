package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/teamboard/internal/match"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// disabled is used when no GCP project is configured.
type disabled struct{}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded  EventType = "match-recorded"
	EventMatchesCleared EventType = "matches-cleared"
)

// MatchRecorded is published after a match has been saved.
type MatchRecorded struct {
	Match match.Record `msgpack:"match"`
}

// MatchesCleared is published after a bulk delete.
type MatchesCleared struct {
	Requested int       `msgpack:"requested"`
	Deleted   int       `msgpack:"deleted"`
	At        time.Time `msgpack:"at"`
}

// PushRequest is the envelope Pub/Sub posts to push subscription endpoints.
type PushRequest struct {
	Message struct {
		Data []byte `json:"data"`
		ID   string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
