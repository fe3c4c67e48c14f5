package processor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/achievements"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/matches"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/pubsub"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// New creates a new Processor. Calendar rules are evaluated in loc.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, rankings Rankings, loc *time.Location) *Processor {
	if loc == nil {
		loc = time.UTC
	}
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		rankings: rankings,
		loc:      loc,
		now:      time.Now,
	}
}

// PublishMatchFinished announces that match just finished. Handling happens
// asynchronously in HandleMatchFinished.
func (p *Processor) PublishMatchFinished(match pool.Match, dryRun bool) error {
	event := pubsub.MatchFinishedEvent{MatchID: match.ID, FinishedAt: match.UpdatedAt, DryRun: dryRun}
	if err := p.pubsub.SendMessage(pubsub.EventMatchFinished, event); err != nil {
		return fmt.Errorf("publish %s for match %s: %w", pubsub.EventMatchFinished, match.ID, err)
	}
	log.Debug("Published match finished", "matchID", match.ID)
	return nil
}

// HandleMessage decodes a match-finished payload and handles it.
func (p *Processor) HandleMessage(data []byte) error {
	var event pubsub.MatchFinishedEvent
	if err := p.pubsub.ProcessMessage(data, &event); err != nil {
		return fmt.Errorf("decode %s: %w", pubsub.EventMatchFinished, err)
	}
	return p.HandleMatchFinished(event.MatchID, event.DryRun)
}

// HandleMatchFinished awards the automatic achievements earned in the match
// and posts the result. A failed award is logged and does not stop the others.
func (p *Processor) HandleMatchFinished(matchID string, dryRun bool) error {
	log.Info("Handling finished match", "matchID", matchID, "dryRun", dryRun)

	match, err := p.store.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	if !match.IsFinished {
		log.Warn("Match is not finished, skipping", "matchID", matchID)
		return nil
	}

	players, err := p.store.GetAllPlayers()
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	index := matches.PlayerIndex(players)
	enriched := matches.EnrichMatch(*match, index)

	awards, err := p.awardAchievements(*match, index, dryRun)
	if err != nil {
		log.Error("Failed to evaluate achievements", "matchID", matchID, "error", err)
	}

	if err := p.notifier.SendMatchResult(notifier.MatchResult{Match: enriched, Awards: awards}, dryRun); err != nil {
		return fmt.Errorf("notify result: %w", err)
	}
	log.Info("Finished handling match", "matchID", matchID, "awards", len(awards))
	return nil
}

func (p *Processor) awardAchievements(match pool.Match, players map[string]pool.Player, dryRun bool) ([]notifier.Award, error) {
	catalog, err := p.store.GetAchievements()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	all, err := p.store.GetAllMatches()
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	finished := finishOrder(matches.FilterByStatus(all, matches.StatusFinished))

	evaluator := achievements.NewEvaluator(catalog, p.loc)
	byCode := make(map[string]pool.Achievement, len(catalog))
	for _, a := range catalog {
		byCode[a.Code] = a
	}

	var awards []notifier.Award
	for _, playerID := range match.PlayerIDs() {
		history := historyUntil(matches.PlayerMatches(finished, playerID), match.ID)
		owned, err := p.store.GetPlayerAchievements(playerID)
		if err != nil {
			log.Error("Failed to load player achievements", "playerID", playerID, "error", err)
			continue
		}

		for _, code := range evaluator.Evaluate(playerID, history, owned) {
			if dryRun {
				log.Info("[Dry Run] Would award achievement", "playerID", playerID, "code", code)
			} else {
				_, err := p.store.AwardAchievement(pool.PlayerAchievement{
					PlayerID:        playerID,
					AchievementCode: code,
					Notes:           fmt.Sprintf("match %s", match.ID),
					AwardedBy:       club.AwardedBySystem,
				})
				if errors.Is(err, pool.ErrConflict) {
					log.Debug("Achievement already held", "playerID", playerID, "code", code)
					continue
				}
				if err != nil {
					log.Error("Failed to award achievement", "playerID", playerID, "code", code, "error", err)
					continue
				}
				p.metrics.IncAchievementsAwarded(1)
			}
			awards = append(awards, notifier.Award{PlayerName: players[playerID].Name, Achievement: byCode[code]})
		}
	}
	return awards, nil
}

// finishOrder sorts finished matches by the time their last game was
// recorded, falling back to creation time.
func finishOrder(list []pool.Match) []pool.Match {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b pool.Match) int {
		if c := a.UpdatedAt.Compare(b.UpdatedAt); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// historyUntil cuts a history in finish order right after matchID, so a
// replayed event sees the same history as the original one.
func historyUntil(history []pool.Match, matchID string) []pool.Match {
	for i, m := range history {
		if m.ID == matchID {
			return history[:i+1]
		}
	}
	return history
}

// SendRankingDigest posts the current ranking of period to Slack.
func (p *Processor) SendRankingDigest(ctx context.Context, period ranking.Period, mode ranking.Mode, dryRun bool) error {
	data, err := p.rankings.Get(ctx, period, mode, p.now())
	if err != nil {
		return fmt.Errorf("compute ranking: %w", err)
	}
	if err := p.notifier.SendRanking(data, dryRun); err != nil {
		return fmt.Errorf("send ranking: %w", err)
	}
	log.Info("Sent ranking digest", "period", period, "mode", mode, "teams", len(data.Rankings))
	return nil
}
