package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/maiconsbotelho/sinucalabs/internal/cache"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	list  []pool.Match
	calls int
	err   error
}

func (f *fakeStore) GetAllPlayers() ([]pool.Player, error) {
	return roster(), nil
}

func (f *fakeStore) GetMatchesBetween(start, end time.Time) ([]pool.Match, error) {
	f.calls++
	return f.list, f.err
}

func TestService_Get(t *testing.T) {
	now := time.Date(2025, time.March, 13, 12, 0, 0, 0, time.UTC)
	unfinished := doubles("open", "p1", "p2", "p3", "p4", 1, 2)
	unfinished.IsFinished = false

	store := &fakeStore{list: []pool.Match{
		doubles("m1", "p1", "p2", "p3", "p4", 3, 1),
		unfinished,
		singles("s1", "p1", "p2", 3, 0),
	}}
	m := metrics.NewMock()
	svc := NewService(store, cache.NewMemory(func() time.Time { return now }), m, time.UTC)

	data, err := svc.Get(context.Background(), Week, Doubles, now)
	require.NoError(t, err)
	require.Len(t, data.Rankings, 2)
	assert.InDelta(t, 75.0, data.Rankings[0].WinRate, 0.001)
	assert.Equal(t, Week, data.Period)
	assert.Equal(t, Doubles, data.Mode)
	assert.Equal(t, 2, data.Summary.TotalMatches, "one appearance per team")
	assert.Equal(t, 1, m.CacheMisses())

	again, err := svc.Get(context.Background(), Week, Doubles, now)
	require.NoError(t, err)
	assert.Equal(t, data.Rankings[0].Key, again.Rankings[0].Key)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, m.CacheHits())

	svc.Invalidate(context.Background())
	_, err = svc.Get(context.Background(), Week, Doubles, now)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestService_GetStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	svc := NewService(store, cache.NewMemory(nil), metrics.NewMock(), nil)

	_, err := svc.Get(context.Background(), Month, Singles, time.Now())
	assert.ErrorContains(t, err, "load matches")
}

func TestService_Get_CacheHitKeepsTimeZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2025, time.March, 13, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{list: []pool.Match{doubles("m1", "p1", "p2", "p3", "p4", 3, 1)}}
	svc := NewService(store, cache.NewMemory(func() time.Time { return now }), metrics.NewMock(), loc)

	miss, err := svc.Get(context.Background(), Week, Doubles, now)
	require.NoError(t, err)
	hit, err := svc.Get(context.Background(), Week, Doubles, now)
	require.NoError(t, err)
	require.Equal(t, 1, store.calls, "second call is served from the cache")

	missJSON, err := json.Marshal(miss)
	require.NoError(t, err)
	hitJSON, err := json.Marshal(hit)
	require.NoError(t, err)
	assert.JSONEq(t, string(missJSON), string(hitJSON))
	assert.Equal(t, "2025-03-10T00:00:00-03:00", hit.StartDate.Format(time.RFC3339))
}
