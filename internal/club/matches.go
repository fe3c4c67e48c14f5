package club

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

const matchColumns = `id, team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
	team1_score, team2_score, is_finished, created_at, updated_at`

func nullable(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (pool.Match, error) {
	var (
		m                pool.Match
		t1p1, t2p1       string
		t1p2, t2p2       sql.NullString
		finished         bool
		created, updated int64
	)
	err := scanner.Scan(&m.ID, &t1p1, &t1p2, &t2p1, &t2p2, &m.Team1Score, &m.Team2Score, &finished, &created, &updated)
	if err != nil {
		return pool.Match{}, err
	}
	m.Team1 = pool.NewTeam(t1p1, t1p2.String)
	m.Team2 = pool.NewTeam(t2p1, t2p2.String)
	m.IsFinished = finished
	m.CreatedAt = fromMillis(created)
	m.UpdatedAt = fromMillis(updated)
	return m, nil
}

func (s *store) queryMatches(query string, args ...any) ([]pool.Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	list := make([]pool.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CreateMatch stores a new match at 0-0. Every referenced player must exist.
func (s *store) CreateMatch(match pool.Match) (*pool.Match, error) {
	ids := match.PlayerIDs()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		var exists bool
		if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check player: %w", err)
		}
		if !exists {
			return nil, pool.NewValidationError(fmt.Sprintf("player %s does not exist", id))
		}
	}

	now := fromMillis(toMillis(s.now()))
	match.ID = uuid.NewString()
	match.Team1Score, match.Team2Score = 0, 0
	match.IsFinished = false
	match.CreatedAt, match.UpdatedAt = now, now

	_, err := s.db.Exec(`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, 0, 0, 0, ?, ?)`,
		match.ID,
		match.Team1.Player1ID(), nullable(match.Team1.Player2ID()),
		match.Team2.Player1ID(), nullable(match.Team2.Player2ID()),
		toMillis(now), toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}
	log.Info("Created match", "matchID", match.ID, "team1", match.Team1, "team2", match.Team2)
	return &match, nil
}

func (s *store) GetMatch(id string) (*pool.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMatch(s.db.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, pool.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	return &m, nil
}

// GetAllMatches returns every match, newest first.
func (s *store) GetAllMatches() ([]pool.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches("SELECT " + matchColumns + " FROM matches ORDER BY created_at DESC")
}

// GetMatchesBetween returns matches created within [start, end], oldest first.
func (s *store) GetMatchesBetween(start, end time.Time) ([]pool.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches("SELECT "+matchColumns+" FROM matches WHERE created_at >= ? AND created_at <= ? ORDER BY created_at",
		toMillis(start), toMillis(end))
}

// RecordGame credits winnerID with the next game of a match. The score
// update only applies if the row still holds the scores it was computed
// from, so a concurrent writer makes this call fail with ErrConflict.
func (s *store) RecordGame(matchID, winnerID string) (*GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := scanMatch(tx.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", matchID, pool.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read match: %w", err)
	}

	addition, err := matches.ProcessGameAddition(match, winnerID)
	if err != nil {
		return nil, err
	}

	now := fromMillis(toMillis(s.now()))
	res, err := tx.Exec(`
		UPDATE matches SET team1_score = ?, team2_score = ?, is_finished = ?, updated_at = ?
		WHERE id = ? AND team1_score = ? AND team2_score = ? AND is_finished = 0`,
		addition.ScoreUpdate.NewTeam1Score, addition.ScoreUpdate.NewTeam2Score, addition.ShouldFinish, toMillis(now),
		match.ID, match.Team1Score, match.Team2Score)
	if err != nil {
		return nil, fmt.Errorf("update match: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return nil, fmt.Errorf("match %s changed while recording a game: %w", match.ID, pool.ErrConflict)
	}

	game := pool.Game{
		ID:         uuid.NewString(),
		MatchID:    match.ID,
		GameNumber: addition.GameNumber,
		WinnerID:   winnerID,
		CreatedAt:  now,
	}
	_, err = tx.Exec("INSERT INTO games (id, match_id, game_number, winner_id, created_at) VALUES (?, ?, ?, ?, ?)",
		game.ID, game.MatchID, game.GameNumber, game.WinnerID, toMillis(now))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("game %d of match %s: %w", game.GameNumber, match.ID, pool.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit game: %w", err)
	}

	match.Team1Score = addition.ScoreUpdate.NewTeam1Score
	match.Team2Score = addition.ScoreUpdate.NewTeam2Score
	match.IsFinished = addition.ShouldFinish
	match.UpdatedAt = now

	log.Info("Recorded game", "matchID", match.ID, "game", game.GameNumber, "winnerID", winnerID,
		"score", fmt.Sprintf("%d-%d", match.Team1Score, match.Team2Score), "finished", match.IsFinished)
	return &GameResult{Match: match, Game: game, Addition: addition, JustFinished: addition.ShouldFinish}, nil
}

// GetGames returns the games of a match ordered by number.
func (s *store) GetGames(matchID string) ([]pool.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, match_id, game_number, winner_id, created_at FROM games WHERE match_id = ? ORDER BY game_number", matchID)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := make([]pool.Game, 0)
	for rows.Next() {
		var (
			g       pool.Game
			created int64
		)
		if err := rows.Scan(&g.ID, &g.MatchID, &g.GameNumber, &g.WinnerID, &created); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.CreatedAt = fromMillis(created)
		games = append(games, g)
	}
	return games, rows.Err()
}
