package club

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/teamboard/internal/match"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	teamsCollection   = "teams"
	matchesCollection = "matches"
)

// NewMongo connects to MongoDB and returns a ClubStore keeping teams and matches in the
// "teams" and "matches" collections of dbName.
func NewMongo(ctx context.Context, uri, dbName string) (ClubStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	db := client.Database(dbName)
	s := newMongoStore(db.Collection(teamsCollection), db.Collection(matchesCollection))
	s.client = client

	_, err = s.teams.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create team name index: %w", err)
	}
	log.Info("Connected to MongoDB", "database", dbName)
	return s, nil
}

func newMongoStore(teams, matches *mongo.Collection) *mongoStore {
	return &mongoStore{
		teams:   teams,
		matches: matches,
	}
}

func (s *mongoStore) AddTeam(ctx context.Context, team Team) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	if _, err := s.teams.InsertOne(ctx, team); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Team{}, fmt.Errorf("%w: %s", ErrTeamExists, team.Name)
		}
		return Team{}, fmt.Errorf("team insert failed: %w", err)
	}
	log.Info("Registered team", "teamID", team.ID, "name", team.Name, "members", len(team.Members))
	return team, nil
}

func (s *mongoStore) GetTeam(ctx context.Context, teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var team Team
	err := s.teams.FindOne(ctx, bson.D{{Key: "_id", Value: teamID}}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Team{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		return Team{}, fmt.Errorf("error fetching team from db: %w", err)
	}
	return team, nil
}

func (s *mongoStore) ListTeams(ctx context.Context) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.teams.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := []Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

func (s *mongoStore) AddMatch(ctx context.Context, record match.Record) (match.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := s.matches.InsertOne(ctx, record); err != nil {
		return match.Record{}, fmt.Errorf("match insert failed: %w", err)
	}
	log.Info("Saved match", "matchID", record.ID, "team1", record.Team1, "team2", record.Team2, "winner", record.Winner)
	return record, nil
}

func (s *mongoStore) ListMatches(ctx context.Context) ([]match.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.matches.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	matches := []match.Record{}
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return matches, nil
}

func (s *mongoStore) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.matches.DeleteOne(ctx, bson.D{{Key: "_id", Value: matchID}})
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	log.Debug("Deleted match", "matchID", matchID)
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
