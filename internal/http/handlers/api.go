package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

const recentMatchesLimit = 5

type playerStatsResponse struct {
	Player        pool.Player            `json:"player"`
	Stats         matches.PlayerStats    `json:"stats"`
	Streak        matches.Streak         `json:"streak"`
	Level         ranking.Level          `json:"level"`
	Achievements  int                    `json:"achievements"`
	RecentMatches []matches.HistoryEntry `json:"recentMatches"`
}

func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.GetAllPlayers()
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		respondData(w, http.StatusOK, players)
	}
}

func CreatePlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "create player")
			return
		}
		player, err := store.AddPlayer(req.Name)
		if err != nil {
			respondErr(w, err, "create player")
			return
		}
		respondData(w, http.StatusCreated, player)
	}
}

func UpdatePlayerHandler(store club.ClubStore, rankings Rankings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "update player")
			return
		}
		player, err := store.UpdatePlayer(r.PathValue("id"), req.Name)
		if err != nil {
			respondErr(w, err, "update player")
			return
		}
		// Cached rankings embed player names.
		rankings.Invalidate(r.Context())
		respondData(w, http.StatusOK, player)
	}
}

func PlayerStatsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		player, err := store.GetPlayer(id)
		if err != nil {
			respondErr(w, err, "get player")
			return
		}
		all, err := store.GetAllMatches()
		if err != nil {
			respondErr(w, err, "get matches")
			return
		}
		roster, err := store.GetAllPlayers()
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		held, err := store.GetPlayerAchievements(id)
		if err != nil {
			respondErr(w, err, "get achievements")
			return
		}

		stats := matches.CalculatePlayerStats(all, id)
		index := matches.PlayerIndex(roster)
		recent := matches.RecentMatches(all, id, recentMatchesLimit)
		history := make([]matches.HistoryEntry, 0, len(recent))
		for _, m := range matches.EnrichMatches(recent, index) {
			history = append(history, matches.TransformForHistory(m))
		}

		log.Debug("Computed player stats", "playerID", id, "matches", stats.TotalMatches)
		respondData(w, http.StatusOK, playerStatsResponse{
			Player:        *player,
			Stats:         stats,
			Streak:        matches.PlayerStreak(all, id),
			Level:         ranking.PerformanceLevel(stats.WinRate),
			Achievements:  len(held),
			RecentMatches: history,
		})
	}
}
