package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digestCall struct {
	Period ranking.Period
	Mode   ranking.Mode
	DryRun bool
}

type fakeDigester struct {
	mu    sync.Mutex
	calls []digestCall
	err   error
	done  chan struct{}
}

func (f *fakeDigester) SendRankingDigest(ctx context.Context, period ranking.Period, mode ranking.Mode, dryRun bool) error {
	f.mu.Lock()
	f.calls = append(f.calls, digestCall{period, mode, dryRun})
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.err
}

func TestRunDigest(t *testing.T) {
	d := &fakeDigester{err: errors.New("slack down")}
	s, err := New(d, nil)
	require.NoError(t, err)

	s.RunDigest()

	require.Len(t, d.calls, 1)
	assert.Equal(t, digestCall{ranking.Week, ranking.Doubles, false}, d.calls[0])
}

func TestScheduleDigest(t *testing.T) {
	d := &fakeDigester{done: make(chan struct{}, 1)}
	s, err := New(d, time.UTC)
	require.NoError(t, err)
	defer s.Shutdown()

	t.Run("invalid cron", func(t *testing.T) {
		_, err := s.ScheduleDigest("every friday")
		assert.Error(t, err)
	})

	job, err := s.ScheduleDigest("0 18 * * 5")
	require.NoError(t, err)
	assert.Equal(t, DigestJobName, job.Name())

	s.Start()
	next, err := job.NextRun()
	require.NoError(t, err)
	assert.Equal(t, time.Friday, next.Weekday())
	assert.Equal(t, 18, next.Hour())

	require.NoError(t, job.RunNow())
	select {
	case <-d.done:
	case <-time.After(5 * time.Second):
		t.Fatal("digest job did not run")
	}
}
