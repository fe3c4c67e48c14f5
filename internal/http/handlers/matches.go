package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

const defaultHistoryLimit = 50

type matchDetail struct {
	Match   pool.EnrichedMatch `json:"match"`
	Games   []pool.Game        `json:"games"`
	Stats   matches.Stats      `json:"stats"`
	Display matches.Display    `json:"display"`
}

type gameRecorded struct {
	Match        pool.EnrichedMatch `json:"match"`
	Game         pool.Game          `json:"game"`
	JustFinished bool               `json:"justFinished"`
}

type headToHeadResponse struct {
	Team1 pool.Team          `json:"team1"`
	Team2 pool.Team          `json:"team2"`
	Stats matches.HeadToHead `json:"stats"`
}

// MatchDeps groups what the match write handlers need.
type MatchDeps struct {
	Store        club.ClubStore
	Metrics      metrics.Metrics
	MetricsStore metrics.MetricsStore
	Rankings     Rankings
	Publisher    MatchPublisher
}

func loadIndex(store club.ClubStore) (map[string]pool.Player, error) {
	players, err := store.GetAllPlayers()
	if err != nil {
		return nil, err
	}
	return matches.PlayerIndex(players), nil
}

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := matches.ParseStatus(r.URL.Query().Get("status"))
		if err != nil {
			respondErr(w, err, "list matches")
			return
		}
		all, err := store.GetAllMatches()
		if err != nil {
			respondErr(w, err, "get matches")
			return
		}
		index, err := loadIndex(store)
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		respondData(w, http.StatusOK, matches.EnrichMatches(matches.FilterByStatus(all, status), index))
	}
}

func CreateMatchHandler(deps MatchDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matches.CreateRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "create match")
			return
		}
		data, err := matches.CreateMatchData(req)
		if err != nil {
			respondErr(w, err, "create match")
			return
		}
		created, err := deps.Store.CreateMatch(data)
		if err != nil {
			respondErr(w, err, "create match")
			return
		}
		deps.Metrics.IncMatchesCreated()
		deps.MetricsStore.Increment(metrics.CounterMatchesCreated)

		index, err := loadIndex(deps.Store)
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		respondData(w, http.StatusCreated, matches.EnrichMatch(*created, index))
	}
}

func GetMatchHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		match, err := store.GetMatch(id)
		if err != nil {
			respondErr(w, err, "get match")
			return
		}
		games, err := store.GetGames(id)
		if err != nil {
			respondErr(w, err, "get games")
			return
		}
		index, err := loadIndex(store)
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		respondData(w, http.StatusOK, matchDetail{
			Match:   matches.EnrichMatch(*match, index),
			Games:   games,
			Stats:   matches.MatchStats(*match),
			Display: matches.DisplayStatus(*match),
		})
	}
}

// UpdateMatchHandler applies an action to a match. add_game is the only one.
func UpdateMatchHandler(deps MatchDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMatchRequest
		if err := decodeBody(r, &req); err != nil {
			respondErr(w, err, "update match")
			return
		}
		if req.Action != actionAddGame {
			respondError(w, http.StatusBadRequest, "unsupported action: use add_game")
			return
		}
		if req.WinnerID == "" {
			respondError(w, http.StatusBadRequest, "winnerId is required")
			return
		}

		id := r.PathValue("id")
		res, err := deps.Store.RecordGame(id, req.WinnerID)
		if err != nil {
			respondErr(w, err, "add game")
			return
		}
		deps.Metrics.IncGamesRecorded()
		deps.MetricsStore.Increment(metrics.CounterGamesRecorded)

		if res.JustFinished {
			deps.Metrics.IncMatchesFinished()
			deps.MetricsStore.Increment(metrics.CounterMatchesFinished)
			deps.Rankings.Invalidate(r.Context())
			if err := deps.Publisher.PublishMatchFinished(res.Match, IsDryRunFromContext(r)); err != nil {
				log.Error("Failed to publish finished match", "matchID", id, "error", err)
			}
		}

		index, err := loadIndex(deps.Store)
		if err != nil {
			respondErr(w, err, "get players")
			return
		}
		respondData(w, http.StatusOK, gameRecorded{
			Match:        matches.EnrichMatch(res.Match, index),
			Game:         res.Game,
			JustFinished: res.JustFinished,
		})
	}
}

func HistoryHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := matches.ParseStatus(r.URL.Query().Get("status"))
		if err != nil {
			respondErr(w, err, "get history")
			return
		}
		limit, err := queryInt(r, "limit", defaultHistoryLimit)
		if err != nil {
			respondErr(w, err, "get history")
			return
		}
		all, err := store.GetAllMatches()
		if err != nil {
			respondErr(w, err, "get matches")
			return
		}
		index, err := loadIndex(store)
		if err != nil {
			respondErr(w, err, "get players")
			return
		}

		list := matches.SortByDate(matches.FilterByStatus(all, status), matches.Descending)
		if len(list) > limit {
			list = list[:limit]
		}
		history := make([]matches.HistoryEntry, 0, len(list))
		for _, m := range matches.EnrichMatches(list, index) {
			history = append(history, matches.TransformForHistory(m))
		}
		respondData(w, http.StatusOK, history)
	}
}

// parseTeam reads a team as one or two comma separated player ids.
func parseTeam(raw string) (pool.Team, error) {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	switch len(ids) {
	case 1:
		return pool.Singles(ids[0]), nil
	case 2:
		return pool.Doubles(ids[0], ids[1]), nil
	default:
		return pool.Team{}, pool.NewValidationError("a team is one or two comma separated player ids")
	}
}

func HeadToHeadHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team1, err := parseTeam(r.URL.Query().Get("a"))
		if err != nil {
			respondErr(w, err, "head to head")
			return
		}
		team2, err := parseTeam(r.URL.Query().Get("b"))
		if err != nil {
			respondErr(w, err, "head to head")
			return
		}
		if team1.Size() != team2.Size() {
			respondError(w, http.StatusBadRequest, "teams must have equal player counts")
			return
		}
		all, err := store.GetAllMatches()
		if err != nil {
			respondErr(w, err, "get matches")
			return
		}
		respondData(w, http.StatusOK, headToHeadResponse{
			Team1: team1,
			Team2: team2,
			Stats: matches.CalculateHeadToHead(all, team1, team2),
		})
	}
}
