package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/shapeapi"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the aggregate method leaderboard",
	Long: `Fetch the accumulated ranking totals from the backend and show which
similarity methods users rank best. Lower totals are better.`,
	RunE: runLeaderboard,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)

	leaderboardCmd.Flags().Bool("json", false, "Output as JSON")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	jsonOutput := mustGetBool(cmd, "json")

	client, err := shapeapi.NewClient(cfg.API.URL)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	resp, err := client.GetRankings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch rankings: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	}

	type entry struct {
		method string
		total  float64
	}
	entries := make([]entry, 0, len(resp.RankingTotals))
	for method, total := range resp.RankingTotals {
		entries = append(entries, entry{method: method, total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total < entries[j].total
		}
		return entries[i].method < entries[j].method
	})

	if len(entries) == 0 {
		fmt.Println("No rankings submitted yet.")
		return nil
	}

	fmt.Println("Method leaderboard (lower is better):")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMETHOD\tTOTAL")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%.1f\n", i+1, e.method, e.total)
	}
	return w.Flush()
}
