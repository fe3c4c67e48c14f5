package http

import (
	"net/http"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/config"
	"github.com/maiconsbotelho/sinucalabs/internal/http/handlers"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/processor"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, rankings handlers.Rankings) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Rankings:       rankings,
		Router:         http.NewServeMux(),
		limiter:        newClientLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		now:            time.Now,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	read := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware)
	}
	write := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, rateLimitMiddleware(s.limiter))
	}
	slackCommand := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret))
	}

	deps := handlers.MatchDeps{
		Store:        s.Store,
		Metrics:      s.Metrics,
		MetricsStore: s.MetricsStore,
		Rankings:     s.Rankings,
		Publisher:    s.Processor,
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", read(handlers.HealthCheckHandler()))
	s.Router.Handle("GET /api/counters", read(handlers.CountersHandler(s.MetricsStore)))

	s.Router.Handle("GET /api/players", read(handlers.ListPlayersHandler(s.Store)))
	s.Router.Handle("POST /api/players", write(handlers.CreatePlayerHandler(s.Store)))
	s.Router.Handle("PATCH /api/players/{id}", write(handlers.UpdatePlayerHandler(s.Store, s.Rankings)))
	s.Router.Handle("GET /api/players/{id}/stats", read(handlers.PlayerStatsHandler(s.Store)))
	s.Router.Handle("GET /api/players/{id}/achievements", read(handlers.PlayerAchievementsHandler(s.Store)))
	s.Router.Handle("POST /api/players/{id}/achievements", write(handlers.AwardAchievementHandler(s.Store, s.Metrics)))
	s.Router.Handle("DELETE /api/player_achievements/{id}", write(handlers.RevokeAchievementHandler(s.Store)))

	s.Router.Handle("GET /api/achievements", read(handlers.ListAchievementsHandler(s.Store)))
	s.Router.Handle("POST /api/achievements", write(handlers.CreateAchievementHandler(s.Store)))
	s.Router.Handle("POST /api/achievements/seed", write(handlers.SeedAchievementsHandler(s.Store)))

	s.Router.Handle("GET /api/matches", read(handlers.ListMatchesHandler(s.Store)))
	s.Router.Handle("POST /api/matches", write(handlers.CreateMatchHandler(deps)))
	s.Router.Handle("GET /api/matches/{id}", read(handlers.GetMatchHandler(s.Store)))
	s.Router.Handle("PATCH /api/matches/{id}", write(handlers.UpdateMatchHandler(deps)))
	s.Router.Handle("GET /api/history", read(handlers.HistoryHandler(s.Store)))
	s.Router.Handle("GET /api/head-to-head", read(handlers.HeadToHeadHandler(s.Store)))

	s.Router.Handle("GET /api/rankings/{period}", read(handlers.RankingsHandler(s.Rankings, s.now)))
	s.Router.Handle("GET /api/rankings/{period}/export", read(handlers.ExportRankingsHandler(s.Rankings, s.now)))
	s.Router.Handle("POST /api/digest", write(handlers.DigestHandler(s.Processor)))

	s.Router.Handle("POST /pubsub/match-finished", read(handlers.MatchFinishedPushHandler(s.Processor)))
	s.Router.Handle("POST /slack/command/ranking", slackCommand(handlers.RankingCommandHandler(s.Rankings, s.Notifier, s.now)))
	s.Router.Handle("POST /slack/command/stats", slackCommand(handlers.PlayerStatsCommandHandler(s.Store, s.Notifier)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
