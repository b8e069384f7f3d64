package main

import (
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/ranking"
	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank catalog candidates against preferences",
	Long:  "Deterministically scores every catalog candidate against the traveler preferences and writes the top items per category sorted by score.",
	RunE:  runRank,
}

var (
	rankCatalog string
	rankPrefs   string
	rankTopK    int
	rankOutput  string
)

func init() {
	rankCmd.Flags().StringVarP(&rankCatalog, "catalog", "c", "", "Path to candidate catalog JSON file (required)")
	rankCmd.Flags().StringVarP(&rankPrefs, "preferences", "p", "", "Path to traveler preferences JSON file (required)")
	rankCmd.Flags().IntVarP(&rankTopK, "top-k", "k", ranking.DefaultTopK, "Number of items to keep per category")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ranked items JSON file (required)")

	if err := rankCmd.MarkFlagRequired("catalog"); err != nil {
		panic(fmt.Sprintf("failed to mark catalog flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("preferences"); err != nil {
		panic(fmt.Sprintf("failed to mark preferences flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankTopK <= 0 {
		return fmt.Errorf("top-k must be greater than 0")
	}

	// 1. Load preferences
	prefs, err := loadPreferences(rankPrefs)
	if err != nil {
		return err
	}

	// 2. Load and validate catalog
	retriever, err := retrieval.NewFixtureRetrieverFromFile(rankCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// 3. Rank per category
	out := make(map[types.Category][]types.ScoredItem, len(types.AllCategories))
	total := 0
	for _, category := range types.AllCategories {
		items, err := retriever.Retrieve(cmd.Context(), category, prefs)
		if err != nil {
			return fmt.Errorf("failed to retrieve %s candidates: %w", category, err)
		}
		ranked := ranking.RankCandidates(items, prefs, rankTopK)
		out[category] = ranked
		total += len(ranked)
	}

	// 4. Write output
	if err := writeJSONOutput(rankOutput, out); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ranked %d items to %s\n", total, rankOutput)
	return nil
}
