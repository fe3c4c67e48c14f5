package ranking

import (
	"fmt"
	"strings"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// Mode selects which matches feed a ranking and how they are keyed.
type Mode string

const (
	Singles    Mode = "singles"
	Doubles    Mode = "doubles"
	Individual Mode = "individual"
)

// DefaultMode is used when a request does not name one.
const DefaultMode = Doubles

// ParseMode accepts singles, doubles or individual, plus 1x1 and 2x2.
// Empty input yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "singles", "1x1":
		return Singles, nil
	case "doubles", "2x2":
		return Doubles, nil
	case "individual":
		return Individual, nil
	default:
		return "", pool.NewValidationError(fmt.Sprintf("invalid mode %q: use singles, doubles or individual", s))
	}
}

// FilterByMode keeps the matches that count for mode.
func FilterByMode(list []pool.Match, mode Mode) []pool.Match {
	if mode == Individual {
		return list
	}
	out := make([]pool.Match, 0, len(list))
	for _, m := range list {
		if m.IsDoubles() == (mode == Doubles) {
			out = append(out, m)
		}
	}
	return out
}

// Rank runs the calculator appropriate for mode.
func (c *Calculator) Rank(list []ScoredMatch, mode Mode) []TeamStats {
	if mode == Individual {
		return c.CalculateIndividualRankings(list)
	}
	return c.CalculateTeamRankings(list)
}
