package main

import (
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/types"
	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve candidate items from a catalog",
	Long:  "Loads a candidate catalog, validates it against the catalog schema, and writes the candidates for one category (or all categories) as JSON.",
	RunE:  runRetrieve,
}

var (
	retrieveCatalog  string
	retrievePrefs    string
	retrieveCategory string
	retrieveOutput   string
)

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveCatalog, "catalog", "c", "", "Path to candidate catalog JSON file (required)")
	retrieveCmd.Flags().StringVarP(&retrievePrefs, "preferences", "p", "", "Path to traveler preferences JSON file (required)")
	retrieveCmd.Flags().StringVar(&retrieveCategory, "category", "", "Category to retrieve: flight, hotel or attraction (default all)")
	retrieveCmd.Flags().StringVarP(&retrieveOutput, "out", "o", "", "Path to output candidates JSON file (required)")

	if err := retrieveCmd.MarkFlagRequired("catalog"); err != nil {
		panic(fmt.Sprintf("failed to mark catalog flag as required: %v", err))
	}
	if err := retrieveCmd.MarkFlagRequired("preferences"); err != nil {
		panic(fmt.Sprintf("failed to mark preferences flag as required: %v", err))
	}
	if err := retrieveCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, _ []string) error {
	// 1. Load preferences
	prefs, err := loadPreferences(retrievePrefs)
	if err != nil {
		return err
	}

	// 2. Load and validate catalog
	retriever, err := retrieval.NewFixtureRetrieverFromFile(retrieveCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// 3. Resolve requested categories
	categories := types.AllCategories
	if retrieveCategory != "" {
		category := types.Category(retrieveCategory)
		if !types.ValidCategory(category) {
			return fmt.Errorf("unknown category %q", retrieveCategory)
		}
		categories = []types.Category{category}
	}

	// 4. Retrieve per category
	out := make(map[types.Category][]types.CandidateItem, len(categories))
	total := 0
	for _, category := range categories {
		items, err := retriever.Retrieve(cmd.Context(), category, prefs)
		if err != nil {
			return fmt.Errorf("failed to retrieve %s candidates: %w", category, err)
		}
		out[category] = items
		total += len(items)
	}

	// 5. Write output
	if err := writeJSONOutput(retrieveOutput, out); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully retrieved %d candidates to %s\n", total, retrieveOutput)
	return nil
}
