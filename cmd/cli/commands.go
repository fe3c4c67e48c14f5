package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	rankingMode   string
	historyStatus string
	historyLimit  int
	exportMode    string
	exportOut     string
	dryRun        bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(seedAchievementsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(metricsCmd)

	historyCmd.Flags().StringVar(&historyStatus, "status", "all", "Filter by status: active, finished or all")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of matches")
	matchesCmd.Flags().StringVar(&historyStatus, "status", "all", "Filter by status: active, finished or all")
	rankingCmd.Flags().StringVar(&rankingMode, "mode", "doubles", "Ranking mode: singles, doubles or individual")
	exportCmd.Flags().StringVar(&exportMode, "mode", "doubles", "Ranking mode: singles, doubles or individual")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default ranking-<period>.xlsx)")
	digestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the digest instead of posting it")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players of the lab",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches with their players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/matches", url.Values{"status": {historyStatus}})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the match history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/history", url.Values{
			"status": {historyStatus},
			"limit":  {strconv.Itoa(historyLimit)},
		})
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking [period]",
	Short: "Show the ranking of a week, month or year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/rankings/"+periodArg(args), url.Values{"mode": {rankingMode}})
	},
}

var seedAchievementsCmd = &cobra.Command{
	Use:   "seed-achievements",
	Short: "Load the built-in achievement catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/achievements/seed", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [period]",
	Short: "Download a ranking as an XLSX workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period := periodArg(args)
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("ranking-%s.xlsx", period)
		}
		return downloadFile("/api/rankings/"+period+"/export", url.Values{"mode": {exportMode}}, out)
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest [period]",
	Short: "Post the ranking digest to Slack now",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/digest", url.Values{
			"period":  {periodArg(args)},
			"dry_run": {strconv.FormatBool(dryRun)},
		})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics and lifetime counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := performRequest(http.MethodGet, "/api/counters", nil); err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func periodArg(args []string) string {
	if len(args) == 0 {
		return "week"
	}
	return args[0]
}

func buildURL(endpoint string, query url.Values) string {
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func performRequest(method, endpoint string, query url.Values) error {
	target := buildURL(endpoint, query)
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func downloadFile(endpoint string, query url.Values, out string) error {
	target := buildURL(endpoint, query)
	fmt.Printf("Downloading %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Saved %s (%d bytes)\n", out, n)
	return nil
}
