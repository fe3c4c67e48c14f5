package main

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/achievements"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// maxGamesPerMatch bounds the game loop; a race to 3 ends within 5 games.
const maxGamesPerMatch = 5

var errNoFinish = errors.New("match did not finish")

type seeder struct {
	store club.ClubStore
	faker *gofakeit.Faker
	clock time.Time
}

// newSeeder builds a store whose timestamps follow the seeder's clock, so
// generated matches land on past dates.
func newSeeder(db *sql.DB, seed uint64) *seeder {
	s := &seeder{clock: time.Now()}
	s.store = club.NewWithClock(db, func() time.Time { return s.clock })
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.faker = gofakeit.New(seed)
	return s
}

// seedRoster adds the named players, reusing the ones already registered.
func (s *seeder) seedRoster(names []string) ([]pool.Player, error) {
	s.clock = time.Now()
	existing, err := s.store.GetAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	byName := make(map[string]pool.Player, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	players := make([]pool.Player, 0, len(names))
	for _, name := range names {
		if p, ok := byName[name]; ok {
			players = append(players, p)
			continue
		}
		p, err := s.store.AddPlayer(name)
		if err != nil {
			return nil, fmt.Errorf("add player %q: %w", name, err)
		}
		players = append(players, *p)
	}
	log.Info("Ensured roster exists", "players", len(players))
	return players, nil
}

func (s *seeder) seedAchievements() error {
	catalog, err := achievements.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	n, err := s.store.UpsertAchievements(catalog)
	if err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	log.Info("Seeded achievements", "count", n)
	return nil
}

// seedMatches plays n random matches through RecordGame, created between
// from and to in chronological order.
func (s *seeder) seedMatches(players []pool.Player, n int, from, to time.Time) error {
	if len(players) < 2 {
		return fmt.Errorf("need at least 2 players, have %d", len(players))
	}

	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = s.faker.DateRange(from, to)
	}
	slices.SortFunc(dates, time.Time.Compare)

	for i, created := range dates {
		if err := s.playRandomMatch(players, created); err != nil {
			return fmt.Errorf("match %d: %w", i+1, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Generated batch", "completed", i+1, "total", n)
		}
	}
	return nil
}

func (s *seeder) playRandomMatch(players []pool.Player, created time.Time) error {
	lineup := make([]pool.Player, len(players))
	copy(lineup, players)
	s.faker.ShuffleAnySlice(lineup)

	match := pool.Match{Team1: pool.Singles(lineup[0].ID), Team2: pool.Singles(lineup[1].ID)}
	if len(lineup) >= 4 && s.faker.Bool() {
		match = pool.Match{
			Team1: pool.Doubles(lineup[0].ID, lineup[1].ID),
			Team2: pool.Doubles(lineup[2].ID, lineup[3].ID),
		}
	}

	s.clock = created
	m, err := s.store.CreateMatch(match)
	if err != nil {
		return err
	}

	participants := m.PlayerIDs()
	for game := 0; game < maxGamesPerMatch; game++ {
		s.clock = created.Add(time.Duration(game+1) * 8 * time.Minute)
		winner := participants[s.faker.Number(0, len(participants)-1)]
		res, err := s.store.RecordGame(m.ID, winner)
		if err != nil {
			return err
		}
		if res.JustFinished {
			return nil
		}
	}
	return errNoFinish
}
