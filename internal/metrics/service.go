package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_matches_created_total",
			Help: "The total number of matches created.",
		}),
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_games_recorded_total",
			Help: "The total number of games recorded across all matches.",
		}),
		MatchesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_matches_finished_total",
			Help: "The total number of matches that reached the winning score.",
		}),
		AchievementsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_achievements_awarded_total",
			Help: "The total number of achievements awarded, manual and automatic.",
		}),
		RankingCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sinuca_ranking_cache_requests_total",
			Help: "Ranking lookups by cache result.",
		}, []string{"result"}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sinuca_ranking_duration_seconds",
			Help:    "The duration of a ranking computation on a cache miss.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sinuca_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sinuca_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.GamesRecorded,
		s.MatchesFinished,
		s.AchievementsAwarded,
		s.RankingCacheRequests,
		s.RankingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated() {
	s.MatchesCreated.Inc()
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncMatchesFinished() {
	s.MatchesFinished.Inc()
}

func (s *Service) IncAchievementsAwarded(n int) {
	s.AchievementsAwarded.Add(float64(n))
}

func (s *Service) IncRankingCacheHit() {
	s.RankingCacheRequests.WithLabelValues("hit").Inc()
}

func (s *Service) IncRankingCacheMiss() {
	s.RankingCacheRequests.WithLabelValues("miss").Inc()
}

func (s *Service) ObserveRankingDuration(seconds float64) {
	s.RankingDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
