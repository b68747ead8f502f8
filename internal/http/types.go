package http

import (
	"net/http"

	"github.com/mauv0809/teamboard/internal/config"
	"github.com/mauv0809/teamboard/internal/guard"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/notifier"
	"github.com/mauv0809/teamboard/internal/processor"
	"github.com/mauv0809/teamboard/internal/pubsub"
)

type Server struct {
	Processor      *processor.Processor
	Guard          *guard.Guard
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	limiter        *IPRateLimiter
}

type registerTeamRequest struct {
	Name    string  `json:"name"`
	Members members `json:"members"`
}

type codeRequest struct {
	Code string `json:"code"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}
