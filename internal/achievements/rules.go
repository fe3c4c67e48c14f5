package achievements

import (
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/scoring"
)

// Codes awarded by Evaluate.
const (
	CodeShutoutWin  = "rei_do_capote"
	CodeShutoutLoss = "tomou_capote"
	CodeCrushed     = "acabou_comigo"
	CodeZeroed      = "zerado"
	CodeVeteran     = "ceo_sinuca"
	CodeNoWhining   = "sem_choro"
	CodeMarathon    = "sanguenozoi"
	CodeAddicted    = "viciado"
	CodeCollector   = "colecionador"
)

// Thresholds of the cumulative rules.
const (
	VeteranMatches    = 50
	LosingStreak      = 3
	MarathonMatches   = 5
	CollectorDistinct = 10
)

// Evaluator decides which automatic achievements a player has just earned.
type Evaluator struct {
	catalog map[string]pool.Achievement
	loc     *time.Location
}

// NewEvaluator only awards codes present in catalog. Days and weeks are
// computed in loc.
func NewEvaluator(catalog []pool.Achievement, loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	index := make(map[string]pool.Achievement, len(catalog))
	for _, a := range catalog {
		index[a.Code] = a
	}
	return &Evaluator{catalog: index, loc: loc}
}

// Evaluate returns the codes to award to playerID after the last match of
// history finished. history holds the player's finished matches, oldest
// first. owned is what the player already holds.
func (e *Evaluator) Evaluate(playerID string, history []pool.Match, owned []pool.PlayerAchievement) []string {
	if len(history) == 0 {
		return nil
	}

	held := make(map[string]bool, len(owned))
	for _, pa := range owned {
		held[pa.AchievementCode] = true
	}

	var earned []string
	award := func(code string) {
		a, ok := e.catalog[code]
		if !ok {
			return
		}
		if held[code] && !a.AllowMultiple {
			return
		}
		earned = append(earned, code)
		held[code] = true
	}

	last := history[len(history)-1]
	side := last.Side(playerID)
	if side == pool.NoTeam {
		return nil
	}
	won := scoring.DetermineMatchWinner(last.Team1Score, last.Team2Score) == side

	if won && last.Score(side.Opponent()) == 0 {
		award(CodeShutoutWin)
	}
	if !won && last.Score(side) == 0 {
		award(CodeShutoutLoss)
		award(CodeCrushed)
		award(CodeZeroed)
	}
	if len(history) >= VeteranMatches {
		award(CodeVeteran)
	}
	if losingStreak(playerID, history) >= LosingStreak {
		award(CodeNoWhining)
	}
	if e.sameDay(history, last.CreatedAt) >= MarathonMatches {
		award(CodeMarathon)
	}
	if e.everyWeekday(history, last.CreatedAt) {
		award(CodeAddicted)
	}
	if len(held) >= CollectorDistinct {
		award(CodeCollector)
	}
	return earned
}

func losingStreak(playerID string, history []pool.Match) int {
	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if scoring.DetermineMatchWinner(m.Team1Score, m.Team2Score) == m.Side(playerID) {
			break
		}
		streak++
	}
	return streak
}

func (e *Evaluator) sameDay(history []pool.Match, ref time.Time) int {
	y, m, d := ref.In(e.loc).Date()
	count := 0
	for _, match := range history {
		my, mm, md := match.CreatedAt.In(e.loc).Date()
		if my == y && mm == m && md == d {
			count++
		}
	}
	return count
}

// everyWeekday reports whether history has a match on each day Monday to
// Friday of the ISO week containing ref.
func (e *Evaluator) everyWeekday(history []pool.Match, ref time.Time) bool {
	refYear, refWeek := ref.In(e.loc).ISOWeek()
	days := make(map[time.Weekday]bool, 5)
	for _, m := range history {
		t := m.CreatedAt.In(e.loc)
		if y, w := t.ISOWeek(); y != refYear || w != refWeek {
			continue
		}
		if wd := t.Weekday(); wd >= time.Monday && wd <= time.Friday {
			days[wd] = true
		}
	}
	return len(days) == 5
}
