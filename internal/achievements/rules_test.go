package achievements

import (
	"testing"
	"time"

	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	list, err := Catalog()
	require.NoError(t, err)
	return NewEvaluator(list, time.UTC)
}

// match returns a finished singles match between "me" and "rival".
func match(at time.Time, mine, theirs int) pool.Match {
	return pool.Match{
		ID:         at.Format(time.RFC3339Nano),
		Team1:      pool.Singles("me"),
		Team2:      pool.Singles("rival"),
		Team1Score: mine,
		Team2Score: theirs,
		IsFinished: true,
		CreatedAt:  at,
	}
}

func owned(codes ...string) []pool.PlayerAchievement {
	out := make([]pool.PlayerAchievement, 0, len(codes))
	for _, c := range codes {
		out = append(out, pool.PlayerAchievement{AchievementCode: c})
	}
	return out
}

func TestEvaluate_Shutouts(t *testing.T) {
	e := newTestEvaluator(t)
	at := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{CodeShutoutWin}, e.Evaluate("me", []pool.Match{match(at, 3, 0)}, nil))
	assert.Equal(t, []string{CodeShutoutLoss, CodeCrushed, CodeZeroed}, e.Evaluate("rival", []pool.Match{match(at, 3, 0)}, nil))
	assert.Empty(t, e.Evaluate("me", []pool.Match{match(at, 3, 1)}, nil))

	t.Run("repeatable achievement is awarded again", func(t *testing.T) {
		got := e.Evaluate("me", []pool.Match{match(at, 3, 0)}, owned(CodeShutoutWin))
		assert.Equal(t, []string{CodeShutoutWin}, got)
	})

	t.Run("single award is not repeated", func(t *testing.T) {
		got := e.Evaluate("rival", []pool.Match{match(at, 3, 0)}, owned(CodeCrushed, CodeZeroed))
		assert.Equal(t, []string{CodeShutoutLoss}, got)
	})

	t.Run("non participant gets nothing", func(t *testing.T) {
		assert.Empty(t, e.Evaluate("stranger", []pool.Match{match(at, 3, 0)}, nil))
	})
}

func TestEvaluate_LosingStreak(t *testing.T) {
	e := newTestEvaluator(t)
	base := time.Date(2025, time.March, 3, 20, 0, 0, 0, time.UTC)
	history := []pool.Match{
		match(base, 3, 1),
		match(base.AddDate(0, 0, 7), 1, 3),
		match(base.AddDate(0, 0, 14), 2, 3),
	}
	assert.NotContains(t, e.Evaluate("me", history, nil), CodeNoWhining)

	history = append(history, match(base.AddDate(0, 0, 21), 1, 3))
	assert.Contains(t, e.Evaluate("me", history, nil), CodeNoWhining)
}

func TestEvaluate_Marathon(t *testing.T) {
	e := newTestEvaluator(t)
	day := time.Date(2025, time.March, 12, 18, 0, 0, 0, time.UTC)

	var history []pool.Match
	for i := 0; i < MarathonMatches; i++ {
		history = append(history, match(day.Add(time.Duration(i)*20*time.Minute), 3, 1))
	}
	assert.Contains(t, e.Evaluate("me", history, nil), CodeMarathon)
	assert.NotContains(t, e.Evaluate("me", history[:MarathonMatches-1], nil), CodeMarathon)
}

func TestEvaluate_Addicted(t *testing.T) {
	e := newTestEvaluator(t)
	monday := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)

	var history []pool.Match
	for i := 0; i < 5; i++ {
		history = append(history, match(monday.AddDate(0, 0, i), 3, 2))
	}
	assert.Contains(t, e.Evaluate("me", history, nil), CodeAddicted)

	// Thursday missing, Saturday does not count.
	gap := []pool.Match{history[0], history[1], history[2], history[4], match(monday.AddDate(0, 0, 5), 3, 2)}
	assert.NotContains(t, e.Evaluate("me", gap, nil), CodeAddicted)
}

func TestEvaluate_VeteranAndCollector(t *testing.T) {
	e := newTestEvaluator(t)
	base := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC)

	var history []pool.Match
	for i := 0; i < VeteranMatches; i++ {
		history = append(history, match(base.AddDate(0, 0, i*7), 3, 2))
	}
	assert.Contains(t, e.Evaluate("me", history, nil), CodeVeteran)
	assert.NotContains(t, e.Evaluate("me", history, owned(CodeVeteran)), CodeVeteran)

	nine := owned("a", "b", "c", "d", "e", "f", "g", "h", "i")
	got := e.Evaluate("me", history, nine)
	assert.Contains(t, got, CodeCollector, "the veteran award makes the tenth")
}

func TestEvaluate_UnknownCodesAreSkipped(t *testing.T) {
	e := NewEvaluator([]pool.Achievement{{Code: CodeZeroed, Name: "Zerado"}}, nil)
	got := e.Evaluate("rival", []pool.Match{match(time.Now(), 3, 0)}, nil)
	assert.Equal(t, []string{CodeZeroed}, got)
}
