package http

import (
	"net/http"

	"github.com/mauv0809/teamboard/internal/config"
	"github.com/mauv0809/teamboard/internal/guard"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/notifier"
	"github.com/mauv0809/teamboard/internal/processor"
	"github.com/mauv0809/teamboard/internal/pubsub"
	"golang.org/x/time/rate"
)

// Guarded endpoints allow a burst of 5 requests, refilled at one request every 6 seconds per IP.
const (
	guardedRate  = rate.Limit(1.0 / 6)
	guardedBurst = 5
)

func NewServer(proc *processor.Processor, g *guard.Guard, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Processor:      proc,
		Guard:          g,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		limiter:        NewIPRateLimiter(guardedRate, guardedBurst),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	guarded := RateLimitMiddleware(s.limiter)
	slackSigned := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("POST /teams", Chain(s.RegisterTeamHandler(), paramsMiddleware))
	s.Router.Handle("GET /teams/{id}", Chain(s.GetTeamHandler(), paramsMiddleware))

	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.RecordMatchHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches", Chain(s.ClearMatchesHandler(), paramsMiddleware, guarded))

	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard/team", Chain(s.TeamStatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard.xlsx", Chain(s.LeaderboardXLSXHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard.png", Chain(s.LeaderboardChartHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/post", Chain(s.PostLeaderboardHandler(), paramsMiddleware))

	s.Router.Handle("POST /admin/token", Chain(s.AdminTokenHandler(), paramsMiddleware, guarded))

	s.Router.Handle("POST /events/match-recorded", Chain(s.MatchRecordedHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackSigned))
	s.Router.Handle("POST /slack/command/team-stats", Chain(s.TeamStatsCommandHandler(), paramsMiddleware, slackSigned))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
