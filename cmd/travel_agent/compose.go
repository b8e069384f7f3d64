package main

import (
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/itinerary"
	"github.com/jonathan/travel-planner/internal/ranking"
	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/types"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a single itinerary from a catalog",
	Long:  "Runs one retrieve-score-rank cycle over the catalog and writes the composed itinerary with flights, hotels and attractions.",
	RunE:  runCompose,
}

var (
	composeCatalog string
	composePrefs   string
	composeTopK    int
	composeOutput  string
)

func init() {
	composeCmd.Flags().StringVarP(&composeCatalog, "catalog", "c", "", "Path to candidate catalog JSON file (required)")
	composeCmd.Flags().StringVarP(&composePrefs, "preferences", "p", "", "Path to traveler preferences JSON file (required)")
	composeCmd.Flags().IntVarP(&composeTopK, "top-k", "k", ranking.DefaultTopK, "Number of items to keep per category")
	composeCmd.Flags().StringVarP(&composeOutput, "out", "o", "", "Path to output itinerary JSON file (required)")

	if err := composeCmd.MarkFlagRequired("catalog"); err != nil {
		panic(fmt.Sprintf("failed to mark catalog flag as required: %v", err))
	}
	if err := composeCmd.MarkFlagRequired("preferences"); err != nil {
		panic(fmt.Sprintf("failed to mark preferences flag as required: %v", err))
	}
	if err := composeCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	if composeTopK <= 0 {
		return fmt.Errorf("top-k must be greater than 0")
	}

	// 1. Load preferences
	prefs, err := loadPreferences(composePrefs)
	if err != nil {
		return err
	}

	// 2. Load and validate catalog
	retriever, err := retrieval.NewFixtureRetrieverFromFile(composeCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// 3. Rank per category
	ranked := make(map[types.Category][]types.ScoredItem, len(types.AllCategories))
	for _, category := range types.AllCategories {
		items, err := retriever.Retrieve(cmd.Context(), category, prefs)
		if err != nil {
			return fmt.Errorf("failed to retrieve %s candidates: %w", category, err)
		}
		ranked[category] = ranking.RankCandidates(items, prefs, composeTopK)
	}

	// 4. Trim attractions to the total trip budget when one is set
	if prefs.TripBudget > 0 {
		ranked[types.CategoryAttraction] = itinerary.SelectWithinBudget(
			ranked[types.CategoryAttraction], prefs.TripBudget)
	}

	// 5. Compose and write
	composed := itinerary.ComposeByCategory(ranked)
	if err := writeJSONOutput(composeOutput, composed); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully composed itinerary with %d flights, %d hotels, %d attractions to %s\n",
		len(composed.Flights), len(composed.Hotels), len(composed.Attractions), composeOutput)
	return nil
}
