package ranking

import (
	"fmt"
	"strings"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// Period is a calendar window a ranking is computed over.
type Period string

const (
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

var periodAliases = map[string]Period{
	"week":   Week,
	"semana": Week,
	"month":  Month,
	"mes":    Month,
	"year":   Year,
	"ano":    Year,
}

// ParsePeriod accepts week, month or year, plus the Portuguese names used by
// older clients.
func ParsePeriod(s string) (Period, error) {
	if p, ok := periodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", pool.NewValidationError(fmt.Sprintf("invalid period %q: use week, month or year", s))
}

// Window returns the inclusive bounds of the period containing now, in loc.
// Weeks start on Monday.
func Window(p Period, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	y, m, d := now.Date()

	var start, next time.Time
	switch p {
	case Week:
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 0, 7)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 1, 0)
	default:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	}
	return start, next.Add(-time.Nanosecond)
}
