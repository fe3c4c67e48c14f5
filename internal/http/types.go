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

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Rankings       handlers.Rankings
	Router         *http.ServeMux

	limiter *clientLimiter
	now     func() time.Time
}
