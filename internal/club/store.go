package club

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/teamboard/internal/match"
)

// New creates a ClubStore backed by a SQL database.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

func (s *store) AddTeam(ctx context.Context, team Team) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	membersJSON, err := json.Marshal(team.Members)
	if err != nil {
		return Team{}, err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO teams (id, name, members_json, created_at) VALUES (?, ?, ?, ?)",
		team.ID, team.Name, string(membersJSON), team.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return Team{}, fmt.Errorf("%w: %s", ErrTeamExists, team.Name)
		}
		return Team{}, fmt.Errorf("failed to insert team: %w", err)
	}
	log.Info("Registered team", "teamID", team.ID, "name", team.Name, "members", len(team.Members))
	return team, nil
}

func (s *store) GetTeam(ctx context.Context, teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT id, name, members_json, created_at FROM teams WHERE id = ?", teamID)
	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Team{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		return Team{}, fmt.Errorf("database error: %w", err)
	}
	return team, nil
}

func (s *store) ListTeams(ctx context.Context) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, members_json, created_at FROM teams ORDER BY created_at, name")
	if err != nil {
		log.Error("Failed to query teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *store) AddMatch(ctx context.Context, record match.Record) (match.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	gamesJSON, err := json.Marshal(record.Games)
	if err != nil {
		return match.Record{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, team1, team2, games_json, winner, sets_won_team1, sets_won_team2, points_team1, points_team2, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, nullString(record.Team1), nullString(record.Team2), string(gamesJSON), record.Winner,
		record.SetsWon[0], record.SetsWon[1], record.Points[0], record.Points[1], record.CreatedAt.UnixNano())
	if err != nil {
		return match.Record{}, fmt.Errorf("failed to insert match: %w", err)
	}
	log.Info("Saved match", "matchID", record.ID, "team1", record.Team1, "team2", record.Team2, "winner", record.Winner)
	return record, nil
}

func (s *store) ListMatches(ctx context.Context) ([]match.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team1, team2, games_json, winner, sets_won_team1, sets_won_team2, points_team1, points_team2, created_at
		FROM matches ORDER BY created_at, id`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []match.Record{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	log.Debug("Deleted match", "matchID", matchID)
	return nil
}

func (s *store) Close(ctx context.Context) error {
	return s.db.Close()
}

func scanTeam(scanner interface{ Scan(...any) error }) (Team, error) {
	var team Team
	var membersJSON string
	var createdAt int64
	if err := scanner.Scan(&team.ID, &team.Name, &membersJSON, &createdAt); err != nil {
		return Team{}, err
	}
	team.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(membersJSON), &team.Members); err != nil {
		log.Error("Failed to unmarshal members_json", "error", err, "teamID", team.ID)
	}
	if team.Members == nil {
		team.Members = []string{}
	}
	return team, nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (match.Record, error) {
	var m match.Record
	var team1, team2 sql.NullString
	var gamesJSON string
	var createdAt int64

	err := scanner.Scan(&m.ID, &team1, &team2, &gamesJSON, &m.Winner,
		&m.SetsWon[0], &m.SetsWon[1], &m.Points[0], &m.Points[1], &createdAt)
	if err != nil {
		return match.Record{}, err
	}
	m.Team1 = team1.String
	m.Team2 = team2.String
	m.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := json.Unmarshal([]byte(gamesJSON), &m.Games); err != nil {
		log.Error("Failed to unmarshal games_json", "error", err, "matchID", m.ID)
	}
	if m.Games == nil {
		m.Games = []match.Game{}
	}
	return m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation matches the constraint error text shared by sqlite3 and libsql.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
