package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/cache"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// CacheTTL is how long a computed ranking is served from the cache.
const CacheTTL = 10 * time.Minute

// Store is the slice of the club store the ranking service reads from.
type Store interface {
	GetAllPlayers() ([]pool.Player, error)
	GetMatchesBetween(start, end time.Time) ([]pool.Match, error)
}

// Service computes rankings on demand and caches them per period and mode.
type Service struct {
	store   Store
	cache   cache.Cache
	metrics metrics.Metrics
	loc     *time.Location
}

func NewService(store Store, c cache.Cache, m metrics.Metrics, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, cache: c, metrics: m, loc: loc}
}

func cacheKey(period Period, mode Mode, start time.Time) string {
	return fmt.Sprintf("%s_%s_%s", period, mode, start.Format("2006-01-02"))
}

// Get returns the ranking of the window containing now. Cache errors are
// logged and the ranking is computed from the store instead.
func (s *Service) Get(ctx context.Context, period Period, mode Mode, now time.Time) (RankingData, error) {
	start, end := Window(period, now, s.loc)
	key := cacheKey(period, mode, start)

	var data RankingData
	hit, err := s.cache.Get(ctx, key, &data)
	if err != nil {
		log.Warn("Ranking cache read failed", "key", key, "error", err)
	}
	if hit {
		// Cached times decode as UTC.
		data.StartDate = data.StartDate.In(s.loc)
		data.EndDate = data.EndDate.In(s.loc)
		data.GeneratedAt = data.GeneratedAt.In(s.loc)
		s.metrics.IncRankingCacheHit()
		log.Debug("Ranking served from cache", "key", key)
		return data, nil
	}
	s.metrics.IncRankingCacheMiss()

	began := time.Now()
	data, err = s.compute(period, mode, start, end, now)
	if err != nil {
		return RankingData{}, err
	}
	s.metrics.ObserveRankingDuration(time.Since(began).Seconds())

	if err := s.cache.Set(ctx, key, data, CacheTTL); err != nil {
		log.Warn("Ranking cache write failed", "key", key, "error", err)
	}
	return data, nil
}

func (s *Service) compute(period Period, mode Mode, start, end, now time.Time) (RankingData, error) {
	players, err := s.store.GetAllPlayers()
	if err != nil {
		return RankingData{}, fmt.Errorf("load players: %w", err)
	}
	list, err := s.store.GetMatchesBetween(start, end)
	if err != nil {
		return RankingData{}, fmt.Errorf("load matches: %w", err)
	}

	finished := make([]pool.Match, 0, len(list))
	for _, m := range list {
		if m.IsFinished {
			finished = append(finished, m)
		}
	}

	rankings := NewCalculator(players).Rank(Annotate(FilterByMode(finished, mode)), mode)
	log.Debug("Computed ranking", "period", period, "mode", mode, "matches", len(finished), "teams", len(rankings))

	return RankingData{
		Period:      period,
		Mode:        mode,
		StartDate:   start,
		EndDate:     end,
		Rankings:    rankings,
		Summary:     CalculatePeriodSummary(rankings),
		GeneratedAt: now.In(s.loc),
	}, nil
}

// Invalidate drops every cached ranking.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("Ranking cache invalidation failed", "error", err)
	}
}
