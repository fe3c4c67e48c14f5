package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/achievements"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

func ListAchievementsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.GetAchievements()
		if err != nil {
			respondErr(w, err, "get achievements")
			return
		}
		respondData(w, http.StatusOK, list)
	}
}

// SeedAchievementsHandler upserts the embedded catalog.
func SeedAchievementsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := achievements.Catalog()
		if err != nil {
			respondErr(w, err, "load catalog")
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would seed achievements", "count", len(catalog))
			respondData(w, http.StatusOK, seedResponse{OK: true, Count: len(catalog)})
			return
		}
		n, err := store.UpsertAchievements(catalog)
		if err != nil {
			respondErr(w, err, "seed achievements")
			return
		}
		log.Info("Seeded achievements", "count", n)
		respondData(w, http.StatusOK, seedResponse{OK: true, Count: n})
	}
}

func CreateAchievementHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req customAchievementRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "create achievement")
			return
		}
		a, err := achievements.NewCustom(req.Name, req.Description, req.Category, req.AllowMultiple)
		if err != nil {
			respondErr(w, err, "create achievement")
			return
		}
		if _, err := store.UpsertAchievements([]pool.Achievement{a}); err != nil {
			respondErr(w, err, "create achievement")
			return
		}
		respondData(w, http.StatusCreated, a)
	}
}

func PlayerAchievementsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, err := store.GetPlayer(id); err != nil {
			respondErr(w, err, "get player")
			return
		}
		held, err := store.GetPlayerAchievements(id)
		if err != nil {
			respondErr(w, err, "get achievements")
			return
		}
		respondData(w, http.StatusOK, held)
	}
}

func AwardAchievementHandler(store club.ClubStore, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req awardRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "award achievement")
			return
		}
		award, err := store.AwardAchievement(pool.PlayerAchievement{
			PlayerID:        r.PathValue("id"),
			AchievementCode: req.AchievementCode,
			Notes:           req.Notes,
			AwardedBy:       req.AwardedBy,
		})
		if err != nil {
			respondErr(w, err, "award achievement")
			return
		}
		m.IncAchievementsAwarded(1)
		respondData(w, http.StatusCreated, award)
	}
}

func RevokeAchievementHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.RevokeAchievement(id); err != nil {
			respondErr(w, err, "revoke achievement")
			return
		}
		log.Info("Revoked achievement", "id", id)
		respondData(w, http.StatusOK, map[string]string{"id": id})
	}
}
