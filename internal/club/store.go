package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return NewWithClock(db, time.Now)
}

// NewWithClock creates a ClubStore that stamps rows using now.
func NewWithClock(db *sql.DB, now func() time.Time) ClubStore {
	return &store{
		db:  db,
		now: now,
	}
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func normalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", pool.NewValidationError("name is required")
	}
	return name, nil
}

// AddPlayer registers a new player. Names are unique.
func (s *store) AddPlayer(name string) (*pool.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := pool.Player{ID: uuid.NewString(), Name: name, CreatedAt: fromMillis(toMillis(now)), UpdatedAt: fromMillis(toMillis(now))}
	_, err = s.db.Exec("INSERT INTO players (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, toMillis(now), toMillis(now))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("player %q: %w", name, pool.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	log.Info("Added player", "playerID", p.ID, "name", p.Name)
	return &p, nil
}

// UpdatePlayer renames a player.
func (s *store) UpdatePlayer(id, name string) (*pool.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET name = ?, updated_at = ? WHERE id = ?", name, toMillis(s.now()), id)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("player %q: %w", name, pool.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("player %s: %w", id, pool.ErrNotFound)
	}
	log.Info("Renamed player", "playerID", id, "name", name)
	return s.getPlayerLocked(id)
}

func scanPlayer(scanner interface{ Scan(...any) error }) (pool.Player, error) {
	var (
		p                pool.Player
		created, updated int64
	)
	if err := scanner.Scan(&p.ID, &p.Name, &created, &updated); err != nil {
		return pool.Player{}, err
	}
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

func (s *store) GetPlayer(id string) (*pool.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(id)
}

func (s *store) getPlayerLocked(id string) (*pool.Player, error) {
	row := s.db.QueryRow("SELECT id, name, created_at, updated_at FROM players WHERE id = ?", id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, pool.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	return &p, nil
}

// GetAllPlayers returns the roster ordered by name.
func (s *store) GetAllPlayers() ([]pool.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at, updated_at FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := make([]pool.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayers returns the players with the given ids. Unknown ids are ignored.
func (s *store) GetPlayers(ids []string) ([]pool.Player, error) {
	if len(ids) == 0 {
		return []pool.Player{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT id, name, created_at, updated_at FROM players WHERE id IN (?%s) ORDER BY name",
		strings.Repeat(", ?", len(ids)-1))
	rows, err := s.db.Query(query, ToAnySlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := make([]pool.Player, 0, len(ids))
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Clear empties every table. Used by the seeder and tests.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"player_achievements", "games", "matches", "achievements", "players", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
