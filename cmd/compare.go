package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/identity"
	"github.com/lmalina/shape-rank/internal/session"
	"github.com/lmalina/shape-rank/internal/shapeapi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [image]",
	Short: "Compare a detected object against a reference category",
	Long: `Upload an image, pick one detected object, and compare its silhouette
against a reference category using one similarity method or all six at once.

With --method compare_all (the default), results that agree on the same
match are grouped together and can be ranked with --rank and submitted
with --submit.

Examples:
  # Compare object 0 against country outlines with all methods
  shape-rank compare holiday.jpg --category countries

  # Single method, no ranking
  shape-rank compare holiday.jpg --category us_states --method ssim

  # Rank the grouped results and submit
  shape-rank compare holiday.jpg --category countries \
    --rank "France=1" --rank "Germany=2" --submit`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Int("object", 0, "Detected object id to compare")
	compareCmd.Flags().String("category", "", "Reference category id (required)")
	compareCmd.Flags().String("method", config.CompareAll, "Similarity method id, or compare_all")
	compareCmd.Flags().StringSlice("rank", nil, "Rank assignment as identity=rank (can be specified multiple times)")
	compareCmd.Flags().Bool("submit", false, "Submit the ranking after assigning ranks")
	compareCmd.Flags().Bool("json", false, "Output as JSON")
	_ = compareCmd.MarkFlagRequired("category")
}

// parseRankFlag splits an identity=rank pair like "France=1".
func parseRankFlag(value string) (string, int, error) {
	name, rankStr, found := strings.Cut(value, "=")
	if !found || name == "" {
		return "", 0, fmt.Errorf("invalid --rank value %q, expected identity=rank", value)
	}
	rank, err := strconv.Atoi(rankStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid rank in %q: %w", value, err)
	}
	return name, rank, nil
}

func printResultGroups(groups []session.ResultGroup, ranks map[string]int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tMATCH\tMETHODS")
	for _, group := range groups {
		rankStr := "-"
		if rank, ok := ranks[group.Outcome.MostSimilar]; ok {
			rankStr = strconv.Itoa(rank)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rankStr, group.Outcome.MostSimilar, strings.Join(group.Methods, ", "))
	}
	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	objectID := mustGetInt(cmd, "object")
	categoryID := mustGetString(cmd, "category")
	method := mustGetString(cmd, "method")
	rankFlags := mustGetStringSlice(cmd, "rank")
	submit := mustGetBool(cmd, "submit")
	jsonOutput := mustGetBool(cmd, "json")

	if cfg.Catalog.Category(categoryID) == nil {
		return fmt.Errorf("unknown category %q, run 'shape-rank catalog' to list categories", categoryID)
	}
	if !cfg.Catalog.ValidMethod(method) {
		return fmt.Errorf("unknown method %q", method)
	}
	if len(rankFlags) > 0 && method != config.CompareAll {
		return errors.New("--rank requires --method compare_all")
	}

	client, err := shapeapi.NewClient(cfg.API.URL)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	sessionID, err := identity.Load(cfg.Session.File)
	if err != nil {
		return fmt.Errorf("failed to load session identity: %w", err)
	}

	sess := session.New(client, sessionID, cfg.Catalog.MethodIDs())
	ctx := context.Background()

	fmt.Printf("Processing %s...\n", args[0])
	detection, err := client.ProcessImage(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}
	sess.SetImage(detection)

	if err := sess.SelectObject(objectID); err != nil {
		return fmt.Errorf("object %d not found, image has %d object(s)", objectID, len(detection.Objects))
	}
	sess.SelectCategory(categoryID)
	sess.SelectMethod(method)

	if method == config.CompareAll && !jsonOutput {
		methods := cfg.Catalog.MethodIDs()
		bar := progressbar.NewOptions(len(methods),
			progressbar.OptionSetDescription("Comparing"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("methods"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionFullWidth(),
		)
		sess.OnProgress = func(string) { _ = bar.Add(1) }
		defer fmt.Println()
	}

	if err := sess.Compare(ctx); err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	key := sess.CurrentKey()
	for _, rankFlag := range rankFlags {
		name, rank, err := parseRankFlag(rankFlag)
		if err != nil {
			return err
		}
		if err := sess.Assign(key, name, rank, session.Unranked); err != nil {
			return fmt.Errorf("failed to rank %q: %w", name, err)
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(sess.Snapshot()); err != nil {
			return err
		}
	} else {
		fmt.Println()
		if err := printResultGroups(sess.Results(key), sess.Ranks(key)); err != nil {
			return err
		}
	}

	if !submit {
		return nil
	}
	if !sess.Ready(key) {
		return fmt.Errorf("cannot submit: all %d result group(s) must be ranked", len(sess.Results(key)))
	}
	if err := sess.Submit(ctx); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	fmt.Println("\nRanking submitted.")
	return nil
}
