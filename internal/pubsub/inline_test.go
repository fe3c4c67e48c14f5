package pubsub

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline_DeliversEncodedPayload(t *testing.T) {
	bus := NewInline()
	finishedAt := time.Date(2025, time.March, 10, 21, 0, 0, 0, time.UTC)

	var got MatchFinishedEvent
	bus.Subscribe(EventMatchFinished, func(data []byte) error {
		return bus.ProcessMessage(data, &got)
	})

	require.NoError(t, bus.SendMessage(EventMatchFinished, MatchFinishedEvent{MatchID: "m1", FinishedAt: finishedAt, DryRun: true}))
	bus.Wait()

	assert.Equal(t, "m1", got.MatchID)
	assert.True(t, got.FinishedAt.Equal(finishedAt))
	assert.True(t, got.DryRun)
}

func TestInline_HandlerErrorsAreNotReturned(t *testing.T) {
	bus := NewInline()
	var calls atomic.Int32
	bus.Subscribe(EventMatchFinished, func([]byte) error {
		calls.Add(1)
		return errors.New("boom")
	})

	assert.NoError(t, bus.SendMessage(EventMatchFinished, MatchFinishedEvent{MatchID: "m1"}))
	require.NoError(t, bus.Close())
	assert.Equal(t, int32(1), calls.Load())
}

func TestInline_UnknownTopicIsDropped(t *testing.T) {
	bus := NewInline()
	assert.NoError(t, bus.SendMessage("nobody-listens", MatchFinishedEvent{}))
	bus.Wait()
}
