package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/export"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func parseRankingRequest(r *http.Request) (ranking.Period, ranking.Mode, error) {
	period, err := ranking.ParsePeriod(r.PathValue("period"))
	if err != nil {
		return "", "", err
	}
	mode, err := ranking.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return "", "", err
	}
	return period, mode, nil
}

// RankingsHandler returns the leaderboard of a period. limit truncates the rows
// but leaves the summary untouched.
func RankingsHandler(rankings Rankings, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, mode, err := parseRankingRequest(r)
		if err != nil {
			respondErr(w, err, "get rankings")
			return
		}
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			respondErr(w, err, "get rankings")
			return
		}

		data, err := rankings.Get(r.Context(), period, mode, now())
		if err != nil {
			respondErr(w, err, "get rankings")
			return
		}
		if limit > 0 {
			data.Rankings = ranking.TopTeams(data.Rankings, limit)
		}
		respondData(w, http.StatusOK, data)
	}
}

func ExportRankingsHandler(rankings Rankings, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, mode, err := parseRankingRequest(r)
		if err != nil {
			respondErr(w, err, "export rankings")
			return
		}
		data, err := rankings.Get(r.Context(), period, mode, now())
		if err != nil {
			respondErr(w, err, "export rankings")
			return
		}
		buf, err := export.RankingWorkbook(data)
		if err != nil {
			respondErr(w, err, "export rankings")
			return
		}

		filename := fmt.Sprintf("ranking-%s-%s-%s.xlsx", period, mode, data.StartDate.Format("2006-01-02"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.Error("Failed to write workbook", "error", err)
		}
	}
}
