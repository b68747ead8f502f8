package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrTeamExists = errors.New("team already exists")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// mongoStore keeps teams and matches as documents in two collections.
type mongoStore struct {
	client  *mongo.Client
	teams   *mongo.Collection
	matches *mongo.Collection
	mu      sync.RWMutex
}

// Team is a registered team. Teams cannot be edited once created.
type Team struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Members   []string  `json:"members" bson:"members"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// HasMember reports whether name is one of the team's members.
func (t Team) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}
