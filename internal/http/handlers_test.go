package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/cache"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/config"
	"github.com/maiconsbotelho/sinucalabs/internal/database"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/processor"
	"github.com/maiconsbotelho/sinucalabs/internal/pubsub"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"
)

const testSlackSigningSecret = "test-signing-secret"

type gameRecordedBody struct {
	Match        pool.EnrichedMatch `json:"match"`
	Game         pool.Game          `json:"game"`
	JustFinished bool               `json:"justFinished"`
}

type headToHeadBody struct {
	Stats struct {
		TotalMatches int `json:"totalMatches"`
		Team1Wins    int `json:"team1Wins"`
		Team2Wins    int `json:"team2Wins"`
		Team1Games   int `json:"team1Games"`
		Team2Games   int `json:"team2Games"`
	} `json:"stats"`
}

type matchDetailBody struct {
	Games   []pool.Game `json:"games"`
	Display struct {
		Status     string `json:"status"`
		CanAddGame bool   `json:"canAddGame"`
	} `json:"display"`
}

type testEnv struct {
	server   *Server
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, cfg config.Config) (*testEnv, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	if cfg.RateLimit.PerSecond == 0 {
		cfg.RateLimit = config.RateLimitConfig{PerSecond: 1000, Burst: 1000}
	}

	clubStore := club.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	rankings := ranking.NewService(clubStore, cache.NewMemory(time.Now), metricsSvc, time.UTC)
	mockNotifier := notifier.NewMock()
	mockPubSub := pubsub.NewMock()
	proc := processor.New(clubStore, mockNotifier, metricsSvc, mockPubSub, rankings, time.UTC)

	server := NewServer(clubStore, metricsSvc, metrics.New(db), metricsHandler, cfg, mockNotifier, proc, rankings)
	return &testEnv{server: server, notifier: mockNotifier, pubsub: mockPubSub}, dbTeardown
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	e.server.Router.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env.Data
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env.Error
}

func (e *testEnv) addPlayers(t *testing.T, names ...string) []pool.Player {
	t.Helper()
	out := make([]pool.Player, 0, len(names))
	for _, name := range names {
		p, err := e.server.Store.AddPlayer(name)
		require.NoError(t, err)
		out = append(out, *p)
	}
	return out
}

// playMatch creates a match and records the winners in order.
func (e *testEnv) playMatch(t *testing.T, team1, team2 pool.Team, winners ...string) pool.Match {
	t.Helper()
	m, err := e.server.Store.CreateMatch(pool.Match{Team1: team1, Team2: team2})
	require.NoError(t, err)
	for _, w := range winners {
		res, err := e.server.Store.RecordGame(m.ID, w)
		require.NoError(t, err)
		m = &res.Match
	}
	return *m
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req := httptest.NewRequest("POST", targetURL, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(fmt.Sprintf("v0:%d:%s", timestamp, body)))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	rr := env.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlayersHandlers(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	t.Run("create", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/players", map[string]string{"name": "Osi o Sábio"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		p := decodeData[pool.Player](t, rr)
		assert.Equal(t, "Osi o Sábio", p.Name)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/players", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "name is required", decodeError(t, rr))
	})

	t.Run("duplicate name", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/players", map[string]string{"name": "Osi o Sábio"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/players", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/players", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		players := decodeData[[]pool.Player](t, rr)
		require.Len(t, players, 1)
	})

	t.Run("rename", func(t *testing.T) {
		players, err := env.server.Store.GetAllPlayers()
		require.NoError(t, err)
		rr := env.do(t, "PATCH", "/api/players/"+players[0].ID, map[string]string{"name": "Osi"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Osi", decodeData[pool.Player](t, rr).Name)

		rr = env.do(t, "PATCH", "/api/players/missing", map[string]string{"name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMatchLifecycle(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "Maicão", "Johnny", "Dief", "Osi")

	rr := env.do(t, "POST", "/api/matches", map[string]string{
		"team1Player1Id": p[0].ID,
		"team1Player2Id": p[1].ID,
		"team2Player1Id": p[2].ID,
		"team2Player2Id": p[3].ID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeData[pool.EnrichedMatch](t, rr)
	assert.Equal(t, "Maicão", created.Team1Players.Player1.Name)
	require.NotNil(t, created.Team2Players.Player2)
	assert.Equal(t, "Osi", created.Team2Players.Player2.Name)

	path := "/api/matches/" + created.ID
	for _, winner := range []string{p[0].ID, p[2].ID, p[1].ID} {
		rr = env.do(t, "PATCH", path, map[string]string{"action": "add_game", "winnerId": winner})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
	assert.Empty(t, env.pubsub.Sent(), "match is still open")

	rr = env.do(t, "PATCH", path+"?dry_run=true", map[string]string{"action": "add_game", "winnerId": p[1].ID})
	require.Equal(t, http.StatusOK, rr.Code)
	finished := decodeData[gameRecordedBody](t, rr)
	assert.True(t, finished.JustFinished)
	assert.Equal(t, 4, finished.Game.GameNumber)
	assert.Equal(t, 3, finished.Match.Team1Score)
	assert.Equal(t, pool.Team1, finished.Match.Winner)

	events := env.pubsub.FinishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].MatchID)
	assert.True(t, events[0].DryRun)

	t.Run("finished match rejects games", func(t *testing.T) {
		rr := env.do(t, "PATCH", path, map[string]string{"action": "add_game", "winnerId": p[0].ID})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), pool.ErrMatchFinished.Error())
	})

	t.Run("detail", func(t *testing.T) {
		rr := env.do(t, "GET", path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		detail := decodeData[matchDetailBody](t, rr)
		assert.Len(t, detail.Games, 4)
		assert.Equal(t, "finished", detail.Display.Status)
		assert.False(t, detail.Display.CanAddGame)
	})

	t.Run("list filters by status", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/matches?status=active", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeData[[]pool.EnrichedMatch](t, rr))

		rr = env.do(t, "GET", "/api/matches?status=finished", nil)
		assert.Len(t, decodeData[[]pool.EnrichedMatch](t, rr), 1)

		rr = env.do(t, "GET", "/api/matches?status=paused", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("counters", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/counters", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		counters := decodeData[map[string]int](t, rr)
		assert.Equal(t, 1, counters[metrics.CounterMatchesCreated])
		assert.Equal(t, 4, counters[metrics.CounterGamesRecorded])
		assert.Equal(t, 1, counters[metrics.CounterMatchesFinished])
	})
}

func TestUpdateMatchValidation(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "A", "B")
	m := env.playMatch(t, pool.Singles(p[0].ID), pool.Singles(p[1].ID))
	path := "/api/matches/" + m.ID

	tests := []struct {
		name   string
		body   map[string]string
		target string
		status int
	}{
		{"unknown action", map[string]string{"action": "finish"}, path, http.StatusBadRequest},
		{"missing winner", map[string]string{"action": "add_game"}, path, http.StatusBadRequest},
		{"winner not in match", map[string]string{"action": "add_game", "winnerId": "ghost"}, path, http.StatusBadRequest},
		{"unknown match", map[string]string{"action": "add_game", "winnerId": p[0].ID}, "/api/matches/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, "PATCH", tt.target, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}

	t.Run("mismatched teams", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/matches", map[string]string{
			"team1Player1Id": p[0].ID,
			"team1Player2Id": p[1].ID,
			"team2Player1Id": "x",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHistoryAndHeadToHead(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "A", "B")
	a, b := pool.Singles(p[0].ID), pool.Singles(p[1].ID)
	env.playMatch(t, a, b, p[0].ID, p[0].ID, p[0].ID)
	env.playMatch(t, b, a, p[1].ID, p[1].ID, p[0].ID, p[1].ID)
	env.playMatch(t, a, b, p[1].ID)

	rr := env.do(t, "GET", "/api/history?status=finished&limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeData[[]json.RawMessage](t, rr), 1)

	rr = env.do(t, "GET", "/api/history?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "GET", "/api/head-to-head?a="+p[0].ID+"&b="+p[1].ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	h2h := decodeData[headToHeadBody](t, rr)
	assert.Equal(t, 3, h2h.Stats.TotalMatches)
	assert.Equal(t, 1, h2h.Stats.Team1Wins)
	assert.Equal(t, 1, h2h.Stats.Team2Wins)
	assert.Equal(t, 4, h2h.Stats.Team1Games)
	assert.Equal(t, 3, h2h.Stats.Team2Games)

	rr = env.do(t, "GET", "/api/head-to-head?a="+p[0].ID+"&b="+p[0].ID+","+p[1].ID, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRankingsHandlers(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "A", "B", "C", "D")
	env.playMatch(t, pool.Doubles(p[0].ID, p[1].ID), pool.Doubles(p[2].ID, p[3].ID), p[0].ID, p[2].ID, p[1].ID, p[0].ID)

	rr := env.do(t, "GET", "/api/rankings/week?mode=doubles", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := decodeData[ranking.RankingData](t, rr)
	require.Len(t, data.Rankings, 2)
	assert.Equal(t, 75.0, data.Rankings[0].WinRate)
	assert.Equal(t, 2, data.Summary.TotalMatches, "one appearance per team")

	rr = env.do(t, "GET", "/api/rankings/semana?limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data = decodeData[ranking.RankingData](t, rr)
	assert.Len(t, data.Rankings, 1)
	assert.Equal(t, 2, data.Summary.TotalTeams, "limit leaves the summary alone")

	rr = env.do(t, "GET", "/api/rankings/decade", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = env.do(t, "GET", "/api/rankings/week?mode=3x3", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	t.Run("export", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/rankings/week/export", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "ranking-week-doubles-")

		f, err := excelize.OpenReader(rr.Body)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Ranking")
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestAchievementHandlers(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "Bryan")

	rr := env.do(t, "POST", "/api/achievements/seed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	seeded := decodeData[map[string]any](t, rr)
	assert.Equal(t, true, seeded["ok"])
	assert.Equal(t, 36.0, seeded["count"])

	rr = env.do(t, "POST", "/api/achievements", map[string]any{"name": "Taco Torto", "category": "caos"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "taco_torto", decodeData[pool.Achievement](t, rr).Code)

	rr = env.do(t, "GET", "/api/achievements", nil)
	assert.Len(t, decodeData[[]pool.Achievement](t, rr), 37)

	award := "/api/players/" + p[0].ID + "/achievements"
	rr = env.do(t, "POST", award, map[string]string{"achievement_code": "taco_torto", "awarded_by": "Osi"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	held := decodeData[pool.PlayerAchievement](t, rr)

	rr = env.do(t, "POST", award, map[string]string{"notes": "no code"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = env.do(t, "POST", award, map[string]string{"achievement_code": "taco_torto"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, "GET", award, nil)
	assert.Len(t, decodeData[[]pool.PlayerAchievement](t, rr), 1)

	rr = env.do(t, "DELETE", "/api/player_achievements/"+held.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, "DELETE", "/api/player_achievements/"+held.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, "GET", "/api/players/"+p[0].ID+"/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decodeData[map[string]any](t, rr)
	assert.Equal(t, "POOR", stats["level"])
	assert.Equal(t, 0.0, stats["achievements"])
}

func TestMatchFinishedPushHandler(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "A", "B")
	m := env.playMatch(t, pool.Singles(p[0].ID), pool.Singles(p[1].ID), p[0].ID, p[0].ID, p[0].ID)

	payload, err := msgpack.Marshal(pubsub.MatchFinishedEvent{MatchID: m.ID, FinishedAt: m.UpdatedAt, DryRun: true})
	require.NoError(t, err)
	var push pubsub.PushRequest
	push.Message.Data = payload
	push.Subscription = "projects/test/subscriptions/match-finished"

	rr := env.do(t, "POST", "/pubsub/match-finished", push)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	results := env.notifier.MatchResults()
	require.Len(t, results, 1)
	assert.Equal(t, m.ID, results[0].Match.ID)
	assert.Equal(t, []bool{true}, env.notifier.DryRuns)

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/pubsub/match-finished", strings.NewReader("nope"))
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDigestHandler(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	rr := env.do(t, "POST", "/api/digest?period=month&dry_run=true", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, env.notifier.SendRankingCalls, 1)
	assert.Equal(t, ranking.Month, env.notifier.SendRankingCalls[0].Period)
	assert.Equal(t, []bool{true}, env.notifier.DryRuns)

	rr = env.do(t, "POST", "/api/digest?period=decade", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimit(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{RateLimit: config.RateLimitConfig{PerSecond: 0.001, Burst: 2}})
	defer teardown()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := env.do(t, "POST", "/api/players", map[string]string{"name": fmt.Sprintf("Player %d", i)})
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	rr := env.do(t, "GET", "/api/players", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "reads are not limited")
}

func TestSlackCommands(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{Slack: config.SlackConfig{SigningSecret: testSlackSigningSecret}})
	defer teardown()

	var lastSummary notifier.PlayerSummary
	notFound := false
	env.notifier.FormatRankingResponseFunc = func(data ranking.RankingData) (any, error) {
		return slack.Message{Msg: slack.Msg{Text: string(data.Period) + " " + string(data.Mode)}}, nil
	}
	env.notifier.FormatPlayerStatsResponseFunc = func(summary notifier.PlayerSummary) (any, error) {
		lastSummary = summary
		return slack.Message{}, nil
	}
	env.notifier.FormatPlayerNotFoundResponseFunc = func(query string, suggestions []string) (any, error) {
		notFound = true
		return slack.Message{}, nil
	}

	env.addPlayers(t, "Henrique Sai da Frente", "Cesar o Profissional")

	t.Run("ranking with aliases", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{"text": {"mes 1x1"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var msg slack.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
		assert.Equal(t, "month singles", msg.Text)
	})

	t.Run("ranking with bad text", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{"text": {"forever"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("stats for a found player", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{"text": {"henrique sai da frente"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Henrique Sai da Frente", lastSummary.Player.Name)
	})

	t.Run("stats for an unknown player", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{"text": {"Zé Ninguém"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, notFound)
	})

	t.Run("missing player name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{"text": {"Cesar"}}, testSlackSigningSecret)
		req.Header.Set("X-Slack-Signature", "v0=invalid-signature")
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{"text": {"Cesar"}}, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with outdated timestamp", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/stats", url.Values{"text": {"Cesar"}}, testSlackSigningSecret)
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10))
		rr := httptest.NewRecorder()
		env.server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	p := env.addPlayers(t, "A", "B")
	rr := env.do(t, "POST", "/api/matches", map[string]string{"team1Player1Id": p[0].ID, "team2Player1Id": p[1].ID})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sinuca_matches_created_total 1")
}
