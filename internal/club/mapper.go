package club

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
)

// autoMatchConfidence is the score above which a lookup resolves without asking.
const autoMatchConfidence = 0.8

const minSuggestionConfidence = 0.3

const maxSuggestions = 5

// PlayerSuggestion is a roster player that loosely matches a query.
type PlayerSuggestion struct {
	Player     pool.Player `json:"player"`
	Confidence float64     `json:"confidence"`
	Reasons    []string    `json:"reasons"`
}

// PlayerMapper resolves free-text names, as typed in Slack commands, to
// roster players.
type PlayerMapper struct {
	store ClubStore
}

func NewPlayerMapper(store ClubStore) *PlayerMapper {
	return &PlayerMapper{store: store}
}

// FindPlayer returns the player the query names when one stands out.
// Otherwise it returns the best suggestions, which may be empty.
func (pm *PlayerMapper) FindPlayer(query string) (*pool.Player, []PlayerSuggestion, error) {
	if normalizeQuery(query) == "" {
		return nil, nil, pool.NewValidationError("player name is required")
	}

	players, err := pm.store.GetAllPlayers()
	if err != nil {
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}

	suggestions := rankCandidates(query, players)
	if len(suggestions) == 0 {
		log.Debug("No player matches query", "query", query)
		return nil, nil, nil
	}

	best := suggestions[0]
	clearWinner := len(suggestions) == 1 || best.Confidence > suggestions[1].Confidence
	if best.Confidence >= autoMatchConfidence && clearWinner {
		log.Debug("Resolved player", "query", query, "player", best.Player.Name, "confidence", best.Confidence)
		return &best.Player, nil, nil
	}
	return nil, suggestions, nil
}

func rankCandidates(query string, players []pool.Player) []PlayerSuggestion {
	q := normalizeQuery(query)
	var suggestions []PlayerSuggestion
	for _, p := range players {
		name := normalizeQuery(p.Name)
		score := similarity(q, name)
		if score < minSuggestionConfidence {
			continue
		}
		suggestions = append(suggestions, PlayerSuggestion{
			Player:     p,
			Confidence: score,
			Reasons:    matchReasons(q, name),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// normalizeQuery lowercases, strips accents and punctuation, and separates
// words with single spaces: "Maicão  Marreta!" becomes "maicao marreta".
func normalizeQuery(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", " ")
}

// similarity is the best of whole-string, token and prefix matching.
func similarity(query, name string) float64 {
	if query == "" || name == "" {
		return 0
	}
	if query == name {
		return 1
	}
	score := stringSimilarity(query, name)
	if t := tokenSimilarity(query, name); t > score {
		score = t
	}
	// A single typed word matching a name component is a strong hint.
	for _, token := range strings.Fields(name) {
		if token == query || (len(query) >= 3 && strings.HasPrefix(token, query)) {
			if score < 0.9 {
				score = 0.9
			}
		}
	}
	return score
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of query words that closely match a word of the name.
func tokenSimilarity(query, name string) float64 {
	qTokens := strings.Fields(query)
	nTokens := strings.Fields(name)
	if len(qTokens) == 0 || len(nTokens) == 0 {
		return 0
	}

	matched := 0
	for _, q := range qTokens {
		for _, n := range nTokens {
			if stringSimilarity(q, n) > 0.8 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(qTokens))
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func matchReasons(query, name string) []string {
	var reasons []string
	switch {
	case query == name:
		reasons = append(reasons, "Exact name match")
	case stringSimilarity(query, name) > 0.8:
		reasons = append(reasons, "Very similar name")
	}
	if tokenSimilarity(query, name) > 0.5 {
		reasons = append(reasons, "Matching name components")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Partial name similarity")
	}
	return reasons
}
