package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// parseRankingText reads "[period] [mode]" in any order, e.g. "mes 1x1".
func parseRankingText(text string) (ranking.Period, ranking.Mode, error) {
	period, mode := ranking.Week, ranking.DefaultMode
	for _, word := range strings.Fields(text) {
		if p, err := ranking.ParsePeriod(word); err == nil {
			period = p
			continue
		}
		m, err := ranking.ParseMode(word)
		if err != nil {
			return "", "", pool.NewValidationError("usage: /ranking [week|month|year] [singles|doubles|individual]")
		}
		mode = m
	}
	return period, mode, nil
}

func RankingCommandHandler(rankings Rankings, n notifier.Notifier, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		period, mode, err := parseRankingText(r.FormValue("text"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Info("Received ranking command", "period", period, "mode", mode, "user", r.FormValue("user_name"))
		data, err := rankings.Get(r.Context(), period, mode, now())
		if err != nil {
			http.Error(w, "Failed to compute ranking", http.StatusInternalServerError)
			log.Error("Failed to compute ranking", "error", err)
			return
		}
		msg, err := n.FormatRankingResponse(data)
		if err != nil {
			http.Error(w, "Failed to format ranking", http.StatusInternalServerError)
			log.Error("Failed to format ranking", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerStatsCommandHandler(store club.ClubStore, n notifier.Notifier) http.HandlerFunc {
	mapper := club.NewPlayerMapper(store)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "query", query)
		player, suggestions, err := mapper.FindPlayer(query)
		if err != nil {
			http.Error(w, "Failed to look up player", http.StatusInternalServerError)
			log.Error("Failed to look up player", "error", err)
			return
		}

		var msg any
		if player == nil {
			names := make([]string, 0, len(suggestions))
			for _, s := range suggestions {
				names = append(names, s.Player.Name)
			}
			log.Warn("Could not resolve player", "query", query, "suggestions", len(names))
			msg, err = n.FormatPlayerNotFoundResponse(query, names)
		} else {
			var summary notifier.PlayerSummary
			summary, err = playerSummary(store, *player)
			if err == nil {
				msg, err = n.FormatPlayerStatsResponse(summary)
			}
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func playerSummary(store club.ClubStore, player pool.Player) (notifier.PlayerSummary, error) {
	all, err := store.GetAllMatches()
	if err != nil {
		return notifier.PlayerSummary{}, err
	}
	held, err := store.GetPlayerAchievements(player.ID)
	if err != nil {
		return notifier.PlayerSummary{}, err
	}
	stats := matches.CalculatePlayerStats(all, player.ID)
	return notifier.PlayerSummary{
		Player:       player,
		Stats:        stats,
		Streak:       matches.PlayerStreak(all, player.ID),
		Level:        ranking.PerformanceLevel(stats.WinRate),
		Achievements: len(held),
	}, nil
}
