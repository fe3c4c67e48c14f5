package processor

import (
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/pubsub"
)

// Processor handles what happens after a match finishes.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	rankings Rankings
	loc      *time.Location
	now      func() time.Time
}
