package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/guard"
	"github.com/mauv0809/teamboard/internal/leaderboard"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/processor"
	"github.com/mauv0809/teamboard/internal/pubsub"
)

const (
	deleteCodeHeader = "X-Delete-Code"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Processor.Teams(r.Context())
		if err != nil {
			log.Error("Failed to get teams from store", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to get teams")
			return
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) RegisterTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerTeamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		team, err := s.Processor.RegisterTeam(r.Context(), req.Name, req.Members, isDryRunFromContext(r))
		switch {
		case err == nil:
			respondJSON(w, http.StatusCreated, team)
		case processor.IsValidation(err):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, club.ErrTeamExists):
			respondError(w, http.StatusConflict, fmt.Sprintf("A team named %q already exists", req.Name))
		default:
			log.Error("Failed to register team", "error", err, "name", req.Name)
			respondError(w, http.StatusInternalServerError, "Failed to register team")
		}
	}
}

func (s *Server) GetTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		team, err := s.Processor.Team(r.Context(), id)
		switch {
		case err == nil:
			respondJSON(w, http.StatusOK, team)
		case errors.Is(err, club.ErrNotFound):
			respondError(w, http.StatusNotFound, fmt.Sprintf("No team with id %q", id))
		default:
			log.Error("Failed to get team from store", "error", err, "teamID", id)
			respondError(w, http.StatusInternalServerError, "Failed to get team")
		}
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Processor.Matches(r.Context())
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to get matches")
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry processor.MatchEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		ctx := r.Context()
		d, err := s.Processor.BuildDraft(ctx, entry)
		if err != nil {
			s.respondMatchError(w, err)
			return
		}
		record, err := s.Processor.RecordMatch(ctx, d, isDryRunFromContext(r))
		if err != nil {
			s.respondMatchError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, record)
	}
}

func (s *Server) respondMatchError(w http.ResponseWriter, err error) {
	if processor.IsValidation(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("Failed to record match", "error", err)
	respondError(w, http.StatusInternalServerError, "Failed to save match")
}

// ClearMatchesHandler deletes every match once the request carries the confirmation code
// (X-Delete-Code header or {"code": ...} body) or a bearer admin token.
func (s *Server) ClearMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.Header.Get(deleteCodeHeader)
		if code == "" && r.ContentLength != 0 {
			var req codeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
				return
			}
			code = req.Code
		}
		token := bearerToken(r)

		if err := s.Guard.Authorize(code, token); err != nil {
			s.Metrics.IncDeleteAttempt(metrics.DeleteRejected)
			if errors.Is(err, guard.ErrWrongCode) {
				log.Warn("Bulk delete rejected, wrong code", "remote", r.RemoteAddr)
				respondError(w, http.StatusForbidden, err.Error())
				return
			}
			log.Warn("Bulk delete rejected, bad token", "error", err, "remote", r.RemoteAddr)
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.Metrics.IncDeleteAttempt(metrics.DeleteAuthorized)

		summary, err := s.Processor.ClearMatches(r.Context(), isDryRunFromContext(r))
		if err != nil {
			s.Metrics.IncDeleteAttempt(metrics.DeleteFailed)
			if len(summary.Failures) == 0 {
				log.Error("Failed to clear matches", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to delete matches")
				return
			}
			log.Error("Bulk delete partially failed", "error", err)
			respondJSON(w, http.StatusInternalServerError, summary)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) AdminTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req codeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		token, expiresAt, err := s.Guard.IssueToken(req.Code)
		switch {
		case err == nil:
			respondJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)})
		case errors.Is(err, guard.ErrWrongCode):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, guard.ErrTokensDisabled):
			respondError(w, http.StatusNotImplemented, err.Error())
		default:
			log.Error("Failed to issue admin token", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to issue token")
		}
	}
}

// LeaderboardHandler returns a handler that serves the team leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts []leaderboard.Option
		if r.URL.Query().Get("detailed") == "true" {
			opts = append(opts, leaderboard.WithSetTotals())
		}
		board, err := s.Processor.Leaderboard(r.Context(), opts...)
		if err != nil {
			log.Error("Failed to compute leaderboard", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to compute leaderboard")
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}

func (s *Server) TeamStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			respondError(w, http.StatusBadRequest, "Team name is required.")
			return
		}
		stats, found, err := s.Processor.TeamStats(r.Context(), name)
		if err != nil {
			log.Error("Failed to compute team stats", "error", err, "team", name)
			respondError(w, http.StatusInternalServerError, "Failed to compute leaderboard")
			return
		}
		if !found {
			respondError(w, http.StatusNotFound, fmt.Sprintf("No team matching %q", name))
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) LeaderboardXLSXHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.Processor.Leaderboard(r.Context(), leaderboard.WithSetTotals())
		if err != nil {
			log.Error("Failed to compute leaderboard", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to compute leaderboard")
			return
		}
		var buf bytes.Buffer
		if err := leaderboard.WriteXLSX(&buf, board); err != nil {
			log.Error("Failed to write leaderboard workbook", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to export leaderboard")
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func (s *Server) LeaderboardChartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.Processor.Leaderboard(r.Context())
		if err != nil {
			log.Error("Failed to compute leaderboard", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to compute leaderboard")
			return
		}
		png, err := leaderboard.RenderChart(board)
		if err != nil {
			log.Error("Failed to render leaderboard chart", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to render leaderboard")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}

// PostLeaderboardHandler posts the current leaderboard to Slack. It is meant to be called by a scheduler.
func (s *Server) PostLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Posting leaderboard...")
		board, err := s.Processor.PostLeaderboard(r.Context(), isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to post leaderboard", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to post leaderboard")
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}

// MatchRecordedHandler consumes match-recorded events pushed by Pub/Sub and sends the result notification.
func (s *Server) MatchRecordedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.MatchRecorded
		if err := s.pubsub.DecodePush(r.Body, &event); err != nil {
			log.Error("Failed to decode match-recorded event", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		log.Debug("Received match-recorded event", "matchID", event.Match.ID)
		if err := s.Processor.NotifyResult(r.Context(), event.Match, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify result", "error", err, "matchID", event.Match.ID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.Processor.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			log.Error("Failed to compute leaderboard", "error", err)
			return
		}
		msg, err := s.Notifier.FormatLeaderboardResponse(board)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, msg)
	}
}

// TeamStatsCommandHandler returns a handler for the /team-stats Slack command.
func (s *Server) TeamStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Team name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received team stats command", "team", query)

		stats, found, err := s.Processor.TeamStats(r.Context(), query)
		if err != nil {
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			log.Error("Failed to compute leaderboard", "error", err)
			return
		}
		var msg any
		if found {
			msg, err = s.Notifier.FormatTeamStatsResponse(stats, query)
		} else {
			log.Warn("Could not find team stats", "team", query)
			msg, err = s.Notifier.FormatTeamNotFoundResponse(query)
		}
		if err != nil {
			http.Error(w, "Failed to format team stats", http.StatusInternalServerError)
			log.Error("Failed to format team stats", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, msg)
	}
}
