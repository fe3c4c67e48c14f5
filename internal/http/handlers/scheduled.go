package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// DigestHandler posts the ranking digest on demand, for external schedulers
// and manual runs. Period and mode default to the weekly doubles digest.
func DigestHandler(digester Digester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := ranking.Week
		if raw := r.URL.Query().Get("period"); raw != "" {
			p, err := ranking.ParsePeriod(raw)
			if err != nil {
				respondErr(w, err, "send digest")
				return
			}
			period = p
		}
		mode, err := ranking.ParseMode(r.URL.Query().Get("mode"))
		if err != nil {
			respondErr(w, err, "send digest")
			return
		}

		log.Info("Sending ranking digest", "period", period, "mode", mode)
		if err := digester.SendRankingDigest(r.Context(), period, mode, IsDryRunFromContext(r)); err != nil {
			respondErr(w, err, "send digest")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Ranking digest sent.")
	}
}
