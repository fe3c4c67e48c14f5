package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// CountersHandler returns the lifetime counters kept in the database.
func CountersHandler(store metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := store.GetAll()
		if err != nil {
			respondErr(w, err, "get counters")
			return
		}
		respondData(w, http.StatusOK, counters)
	}
}
