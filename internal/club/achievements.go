package club

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// UpsertAchievements inserts or refreshes catalog entries by code and
// returns how many were written.
func (s *store) UpsertAchievements(list []pool.Achievement) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO achievements (code, name, description, category, allow_multiple)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			allow_multiple = excluded.allow_multiple`)
	if err != nil {
		return 0, fmt.Errorf("prepare achievement upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range list {
		if a.Code == "" || a.Name == "" {
			return 0, pool.NewValidationError("achievement code and name are required")
		}
		if _, err := stmt.Exec(a.Code, a.Name, a.Description, a.Category, a.AllowMultiple); err != nil {
			return 0, fmt.Errorf("upsert achievement %s: %w", a.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit achievements: %w", err)
	}
	log.Info("Upserted achievements", "count", len(list))
	return len(list), nil
}

func scanAchievement(scanner interface{ Scan(...any) error }) (pool.Achievement, error) {
	var a pool.Achievement
	err := scanner.Scan(&a.Code, &a.Name, &a.Description, &a.Category, &a.AllowMultiple)
	return a, err
}

// GetAchievements returns the catalog ordered by category, then name.
func (s *store) GetAchievements() ([]pool.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT code, name, description, category, allow_multiple FROM achievements ORDER BY category, name")
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	list := make([]pool.Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *store) GetAchievement(code string) (*pool.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAchievementLocked(code)
}

func (s *store) getAchievementLocked(code string) (*pool.Achievement, error) {
	a, err := scanAchievement(s.db.QueryRow("SELECT code, name, description, category, allow_multiple FROM achievements WHERE code = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("achievement %s: %w", code, pool.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get achievement: %w", err)
	}
	return &a, nil
}

// AwardAchievement grants an achievement to a player. An achievement that
// does not allow multiples can only be held once.
func (s *store) AwardAchievement(award pool.PlayerAchievement) (*pool.PlayerAchievement, error) {
	if award.AchievementCode == "" {
		return nil, pool.NewValidationError("achievement_code is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getPlayerLocked(award.PlayerID); err != nil {
		return nil, err
	}
	achievement, err := s.getAchievementLocked(award.AchievementCode)
	if errors.Is(err, pool.ErrNotFound) {
		return nil, pool.NewValidationError(fmt.Sprintf("unknown achievement %q", award.AchievementCode))
	}
	if err != nil {
		return nil, err
	}

	if !achievement.AllowMultiple {
		var held bool
		err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM player_achievements WHERE player_id = ? AND achievement_code = ?)",
			award.PlayerID, award.AchievementCode).Scan(&held)
		if err != nil {
			return nil, fmt.Errorf("check achievement: %w", err)
		}
		if held {
			return nil, fmt.Errorf("player %s already has %s: %w", award.PlayerID, award.AchievementCode, pool.ErrConflict)
		}
	}

	now := s.now()
	award.ID = uuid.NewString()
	award.CreatedAt = fromMillis(toMillis(now))
	award.Achievement = achievement
	_, err = s.db.Exec(`INSERT INTO player_achievements (id, player_id, achievement_code, notes, awarded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		award.ID, award.PlayerID, award.AchievementCode, award.Notes, award.AwardedBy, toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("insert player achievement: %w", err)
	}
	log.Info("Awarded achievement", "playerID", award.PlayerID, "code", award.AchievementCode, "awardedBy", award.AwardedBy)
	return &award, nil
}

const playerAchievementQuery = `
	SELECT pa.id, pa.player_id, pa.achievement_code, pa.notes, pa.awarded_by, pa.created_at,
		a.code, a.name, a.description, a.category, a.allow_multiple
	FROM player_achievements pa
	JOIN achievements a ON a.code = pa.achievement_code`

func (s *store) queryPlayerAchievements(where string, args ...any) ([]pool.PlayerAchievement, error) {
	rows, err := s.db.Query(playerAchievementQuery+" "+where+" ORDER BY pa.created_at DESC, pa.id", args...)
	if err != nil {
		return nil, fmt.Errorf("query player achievements: %w", err)
	}
	defer rows.Close()

	list := make([]pool.PlayerAchievement, 0)
	for rows.Next() {
		var (
			pa      pool.PlayerAchievement
			a       pool.Achievement
			created int64
		)
		err := rows.Scan(&pa.ID, &pa.PlayerID, &pa.AchievementCode, &pa.Notes, &pa.AwardedBy, &created,
			&a.Code, &a.Name, &a.Description, &a.Category, &a.AllowMultiple)
		if err != nil {
			return nil, fmt.Errorf("scan player achievement: %w", err)
		}
		pa.CreatedAt = fromMillis(created)
		pa.Achievement = &a
		list = append(list, pa)
	}
	return list, rows.Err()
}

// GetPlayerAchievements returns a player's awards, newest first.
func (s *store) GetPlayerAchievements(playerID string) ([]pool.PlayerAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayerAchievements("WHERE pa.player_id = ?", playerID)
}

func (s *store) GetAllPlayerAchievements() ([]pool.PlayerAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayerAchievements("")
}

func (s *store) RevokeAchievement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM player_achievements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete player achievement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player achievement %s: %w", id, pool.ErrNotFound)
	}
	log.Info("Revoked achievement", "id", id)
	return nil
}
