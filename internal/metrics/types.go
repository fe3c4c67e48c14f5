package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesCreated       prometheus.Counter
	GamesRecorded        prometheus.Counter
	MatchesFinished      prometheus.Counter
	AchievementsAwarded  prometheus.Counter
	RankingCacheRequests *prometheus.CounterVec
	RankingDuration      prometheus.Histogram
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}

// Counter keys persisted through MetricsStore.
const (
	CounterMatchesCreated  = "matches_created"
	CounterGamesRecorded   = "games_recorded"
	CounterMatchesFinished = "matches_finished"
)
