package club_test

import (
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/database"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func addPlayers(t *testing.T, store club.ClubStore, names ...string) []pool.Player {
	t.Helper()
	out := make([]pool.Player, 0, len(names))
	for _, name := range names {
		p, err := store.AddPlayer(name)
		require.NoError(t, err)
		out = append(out, *p)
	}
	return out
}

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players := addPlayers(t, store, "Osi", "  Dief   o Filosofo ")
	assert.Equal(t, "Dief o Filosofo", players[1].Name)

	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dief o Filosofo", all[0].Name, "roster is ordered by name")

	got, err := store.GetPlayer(players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Osi", got.Name)

	some, err := store.GetPlayers([]string{players[0].ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, some, 1)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := store.AddPlayer("Osi")
		assert.ErrorIs(t, err, pool.ErrConflict)
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		_, err := store.AddPlayer("   ")
		assert.True(t, pool.IsValidation(err))
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := store.GetPlayer("missing")
		assert.ErrorIs(t, err, pool.ErrNotFound)
	})
}

func TestUpdatePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players := addPlayers(t, store, "Juan", "Bryan")

	got, err := store.UpdatePlayer(players[0].ID, "Juan do Basquete")
	require.NoError(t, err)
	assert.Equal(t, "Juan do Basquete", got.Name)

	_, err = store.UpdatePlayer("missing", "Someone")
	assert.ErrorIs(t, err, pool.ErrNotFound)

	_, err = store.UpdatePlayer(players[1].ID, "Juan do Basquete")
	assert.ErrorIs(t, err, pool.ErrConflict)
}

func TestCreateMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := addPlayers(t, store, "A", "B", "C", "D")

	m, err := store.CreateMatch(pool.Match{Team1: pool.Doubles(p[0].ID, p[1].ID), Team2: pool.Doubles(p[2].ID, p[3].ID)})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Zero(t, m.Team1Score)
	assert.False(t, m.IsFinished)

	got, err := store.GetMatch(m.ID)
	require.NoError(t, err)
	assert.True(t, got.Team1.SameAs(pool.Doubles(p[0].ID, p[1].ID)))
	assert.True(t, got.IsDoubles())

	singles, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)
	got, err = store.GetMatch(singles.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDoubles())
	assert.Empty(t, got.Team1.Player2ID())

	_, err = store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles("ghost")})
	assert.True(t, pool.IsValidation(err))

	_, err = store.GetMatch("missing")
	assert.ErrorIs(t, err, pool.ErrNotFound)
}

func TestRecordGame(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := addPlayers(t, store, "A", "B")
	m, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)

	winners := []string{p[0].ID, p[1].ID, p[0].ID, p[0].ID}
	var last *club.GameResult
	for i, w := range winners {
		last, err = store.RecordGame(m.ID, w)
		require.NoError(t, err)
		assert.Equal(t, i+1, last.Game.GameNumber)
		assert.Equal(t, i == len(winners)-1, last.JustFinished)
	}
	assert.Equal(t, 3, last.Match.Team1Score)
	assert.Equal(t, 1, last.Match.Team2Score)

	got, err := store.GetMatch(m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinished)
	assert.Equal(t, 3, got.Team1Score)

	games, err := store.GetGames(m.ID)
	require.NoError(t, err)
	require.Len(t, games, 4)
	for i, g := range games {
		assert.Equal(t, i+1, g.GameNumber)
		assert.Equal(t, winners[i], g.WinnerID)
	}

	t.Run("finished match rejects games", func(t *testing.T) {
		_, err := store.RecordGame(m.ID, p[1].ID)
		assert.ErrorIs(t, err, pool.ErrMatchFinished)
	})

	t.Run("winner must play in the match", func(t *testing.T) {
		open, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
		require.NoError(t, err)
		_, err = store.RecordGame(open.ID, "outsider")
		assert.ErrorIs(t, err, pool.ErrWinnerNotFound)

		games, err := store.GetGames(open.ID)
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := store.RecordGame("missing", p[0].ID)
		assert.ErrorIs(t, err, pool.ErrNotFound)
	})
}

func TestRecordGame_Concurrent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := addPlayers(t, store, "A", "B")
	m, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.RecordGame(m.ID, p[i%2].ID)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	recorded := 0
	for err := range errs {
		if err == nil {
			recorded++
			continue
		}
		assert.True(t, errors.Is(err, pool.ErrMatchFinished) || errors.Is(err, pool.ErrConflict), err)
	}

	got, err := store.GetMatch(m.ID)
	require.NoError(t, err)
	games, err := store.GetGames(m.ID)
	require.NoError(t, err)

	assert.Equal(t, recorded, len(games))
	assert.Equal(t, got.Team1Score+got.Team2Score, len(games), "scores match the recorded games")
	assert.True(t, got.IsFinished)
}

func TestGetMatchesBetween(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := club.NewWithClock(db, func() time.Time { return now })
	p := addPlayers(t, store, "A", "B")

	first, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)
	now = now.AddDate(0, 0, 10)
	_, err = store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)

	list, err := store.GetMatchesBetween(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	all, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, first.ID, all[0].ID, "newest first")
}

func TestAchievements(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := addPlayers(t, store, "A")
	n, err := store.UpsertAchievements([]pool.Achievement{
		{Code: "once", Name: "Once", Category: pool.CategorySkill},
		{Code: "many", Name: "Many", Category: pool.CategoryChaos, AllowMultiple: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.UpsertAchievements([]pool.Achievement{{Code: "once", Name: "Only Once", Category: pool.CategorySkill}})
	require.NoError(t, err)
	a, err := store.GetAchievement("once")
	require.NoError(t, err)
	assert.Equal(t, "Only Once", a.Name)

	catalog, err := store.GetAchievements()
	require.NoError(t, err)
	assert.Len(t, catalog, 2)

	award, err := store.AwardAchievement(pool.PlayerAchievement{PlayerID: p[0].ID, AchievementCode: "once", AwardedBy: "Osi"})
	require.NoError(t, err)
	require.NotNil(t, award.Achievement)
	assert.Equal(t, "Only Once", award.Achievement.Name)

	_, err = store.AwardAchievement(pool.PlayerAchievement{PlayerID: p[0].ID, AchievementCode: "once"})
	assert.ErrorIs(t, err, pool.ErrConflict)

	for i := 0; i < 2; i++ {
		_, err = store.AwardAchievement(pool.PlayerAchievement{PlayerID: p[0].ID, AchievementCode: "many"})
		require.NoError(t, err)
	}

	_, err = store.AwardAchievement(pool.PlayerAchievement{PlayerID: p[0].ID, AchievementCode: "nope"})
	assert.True(t, pool.IsValidation(err))
	_, err = store.AwardAchievement(pool.PlayerAchievement{PlayerID: "ghost", AchievementCode: "many"})
	assert.ErrorIs(t, err, pool.ErrNotFound)

	held, err := store.GetPlayerAchievements(p[0].ID)
	require.NoError(t, err)
	assert.Len(t, held, 3)

	require.NoError(t, store.RevokeAchievement(award.ID))
	assert.ErrorIs(t, store.RevokeAchievement(award.ID), pool.ErrNotFound)

	all, err := store.GetAllPlayerAchievements()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := addPlayers(t, store, "A", "B")
	m, err := store.CreateMatch(pool.Match{Team1: pool.Singles(p[0].ID), Team2: pool.Singles(p[1].ID)})
	require.NoError(t, err)
	_, err = store.RecordGame(m.ID, p[0].ID)
	require.NoError(t, err)

	store.Clear()

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Empty(t, players)
	list, err := store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, list)
}
