package metrics

// Metrics collects the process counters exposed on /metrics.
type Metrics interface {
	IncMatchesCreated()
	IncGamesRecorded()
	IncMatchesFinished()
	IncAchievementsAwarded(n int)
	IncRankingCacheHit()
	IncRankingCacheMiss()
	ObserveRankingDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters in the database so they survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
