package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/maiconsbotelho/sinucalabs/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	loc       *time.Location
}

// NewNotifier creates a new Notifier. Dates are rendered in loc.
func NewNotifier(token, channelID string, metrics metrics.Metrics, loc *time.Location) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics, loc)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		loc:       loc,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(result notifier.MatchResult, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(result), dryRun)
	return err
}

func (s *Notifier) SendRanking(data ranking.RankingData, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRanking(data), dryRun)
	return err
}

// FormatRankingResponse formats a ranking for a slash command response.
func (s *Notifier) FormatRankingResponse(data ranking.RankingData) (any, error) {
	return s.formatRanking(data), nil
}

// FormatPlayerStatsResponse formats a player's record for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(summary notifier.PlayerSummary) (any, error) {
	return s.formatPlayerStats(summary), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	return s.formatPlayerNotFound(query, suggestions), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.PlainTextType, text, true, false), nil, nil)
}

func mrkdwnSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func header(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, text, true, false))
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func teamName(team pool.EnrichedTeam) string {
	if team.Player2 == nil {
		return team.Player1.Name
	}
	return team.Player1.Name + " & " + team.Player2.Name
}

// formatMatchResult creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatMatchResult(result notifier.MatchResult) slack.Message {
	m := result.Match
	blocks := []slack.Block{header("🎱 Match finished! 🎱")}

	format := "1x1"
	if m.IsDoubles() {
		format = "2x2"
	}
	details := fmt.Sprintf("%s · %s", format, m.UpdatedAt.In(s.loc).Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, plainSection(details))

	winner := scoring.DetermineMatchWinner(m.Team1Score, m.Team2Score)
	winnerName, loserName := teamName(m.Team1Players), teamName(m.Team2Players)
	if winner == pool.Team2 {
		winnerName, loserName = loserName, winnerName
	}
	scoreText := fmt.Sprintf("%s %d x %d %s", teamName(m.Team1Players), m.Team1Score, m.Team2Score, teamName(m.Team2Players))
	resultText := fmt.Sprintf("Result: %s won! 🏆", winnerName)
	fields := []*slack.TextBlockObject{slack.NewTextBlockObject(slack.PlainTextType, scoreText, true, false)}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(slack.PlainTextType, resultText, true, false), fields, nil))

	if m.Score(winner.Opponent()) == 0 {
		capote := fmt.Sprintf("😬 %s took a capote!", loserName)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, capote, true, false)))
	}

	if len(result.Awards) > 0 {
		lines := make([]string, 0, len(result.Awards))
		for _, a := range result.Awards {
			lines = append(lines, fmt.Sprintf("• *%s* unlocked _%s_", a.PlayerName, a.Achievement.Name))
		}
		blocks = append(blocks, slack.NewDividerBlock(), mrkdwnSection("🏅 Achievements\n"+strings.Join(lines, "\n")))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf("Match finished: %s", scoreText)
	return msg
}

var periodTitles = map[ranking.Period]string{
	ranking.Week:  "Weekly",
	ranking.Month: "Monthly",
	ranking.Year:  "Yearly",
}

// formatRanking creates a Slack message to display a ranking.
func (s *Notifier) formatRanking(data ranking.RankingData) slack.Message {
	title := fmt.Sprintf("🏆 %s ranking (%s) 🏆", periodTitles[data.Period], data.Mode)
	blocks := []slack.Block{header(title)}

	window := fmt.Sprintf("%s to %s", data.StartDate.In(s.loc).Format("02 Jan"), data.EndDate.In(s.loc).Format("02 Jan 2006"))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, window, true, false)))

	if len(data.Rankings) == 0 {
		blocks = append(blocks, plainSection("No finished matches in this period yet. Go play some!"))
		msg := slack.NewBlockMessage(blocks...)
		msg.Text = title
		return msg
	}

	for i, stat := range ranking.TopTeams(data.Rankings, ranking.DefaultTopLimit) {
		rank := i + 1
		text := fmt.Sprintf("%d. %s %s\n> Win %%: %.2f%% (%s) | Matches: %d-%d",
			rank,
			medal(rank),
			ranking.TeamName(stat.Team),
			stat.WinRate,
			ranking.FormatRecord(stat),
			stat.MatchesWon,
			stat.MatchesLost,
		)
		blocks = append(blocks, plainSection(text))
	}

	summary := fmt.Sprintf("%d teams · %d matches · %d games · avg win %% %.1f",
		data.Summary.TotalTeams, data.Summary.TotalMatches, data.Summary.TotalGames, data.Summary.AvgWinRate)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, summary, true, false)))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = title
	return msg
}

// formatPlayerStats creates a Slack message to display a single player's record.
func (s *Notifier) formatPlayerStats(summary notifier.PlayerSummary) slack.Message {
	blocks := []slack.Block{header(fmt.Sprintf("🎱 Stats for %s 🎱", summary.Player.Name))}

	st := summary.Stats
	text := fmt.Sprintf("> *Match Win %%*: %.2f%% (%d/%d)\n> *Games Won*: %d/%d (%.2f%%)\n> *Level*: %s",
		st.WinRate, st.Wins, st.TotalMatches,
		st.GamesWon, st.TotalGames, st.GameWinRate,
		summary.Level,
	)
	if summary.Streak.Count > 0 {
		text += fmt.Sprintf("\n> *Streak*: %d %s", summary.Streak.Count, summary.Streak.Kind)
	}
	if summary.Achievements > 0 {
		text += fmt.Sprintf("\n> *Achievements*: %d", summary.Achievements)
	}
	blocks = append(blocks, mrkdwnSection(text))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when no player matches a query.
func (s *Notifier) formatPlayerNotFound(query string, suggestions []string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*.", query)
	if len(suggestions) > 0 {
		text += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	} else {
		text += " Try a different name."
	}
	return slack.NewBlockMessage(mrkdwnSection(text))
}
