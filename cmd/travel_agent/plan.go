package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/config"
	"github.com/jonathan/travel-planner/internal/history"
	"github.com/jonathan/travel-planner/internal/observability"
	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/session"
	"github.com/jonathan/travel-planner/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the full refinement loop",
	Long:  "Runs the complete plan-feedback-refine loop over a candidate catalog: composes an itinerary, applies feedback from a script file after each pass, and stops on acceptance or at the pass cap.",
	RunE:  runPlan,
}

var (
	planCatalog   string
	planPrefs     string
	planFeedback  string
	planConfig    string
	planTopK      int
	planMaxPasses int
	planStrategy  string
	planOutput    string
	planVerbose   bool
)

func init() {
	planCmd.Flags().StringVarP(&planCatalog, "catalog", "c", "", "Path to candidate catalog JSON file")
	planCmd.Flags().StringVarP(&planPrefs, "preferences", "p", "", "Path to traveler preferences JSON file")
	planCmd.Flags().StringVarP(&planFeedback, "feedback", "f", "", "Path to feedback script JSON file (array of feedback objects)")
	planCmd.Flags().StringVar(&planConfig, "config", "", "Path to config JSON file providing flag defaults")
	planCmd.Flags().IntVarP(&planTopK, "top-k", "k", 0, "Number of items to keep per category")
	planCmd.Flags().IntVarP(&planMaxPasses, "max-passes", "m", 0, "Refinement pass cap")
	planCmd.Flags().StringVarP(&planStrategy, "strategy", "s", "", "Initial scoring strategy: balanced, cheapest or highest_quality")
	planCmd.Flags().StringVarP(&planOutput, "out", "o", "", "Path to output itinerary JSON file (required)")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print detailed progress information")

	if err := planCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	// 1. Apply config file defaults to unset flags
	if planConfig != "" {
		cfg, err := config.LoadConfig(planConfig)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		merged := (&config.Config{
			Catalog:     planCatalog,
			Preferences: planPrefs,
			TopK:        planTopK,
			MaxPasses:   planMaxPasses,
			Strategy:    planStrategy,
			Verbose:     planVerbose,
		}).MergeWithDefaults(*cfg)
		planCatalog = merged.Catalog
		planPrefs = merged.Preferences
		planTopK = merged.TopK
		planMaxPasses = merged.MaxPasses
		planStrategy = merged.Strategy
		planVerbose = merged.Verbose
	}
	if planCatalog == "" {
		return fmt.Errorf("a catalog is required (--catalog flag or config file)")
	}
	if planPrefs == "" {
		return fmt.Errorf("preferences are required (--preferences flag or config file)")
	}

	// 2. Load preferences, applying the strategy override
	prefs, err := loadPreferences(planPrefs)
	if err != nil {
		return err
	}
	if planStrategy != "" {
		strategy := types.Strategy(planStrategy)
		if !types.ValidStrategy(strategy) {
			return fmt.Errorf("unknown strategy %q", planStrategy)
		}
		prefs.Strategy = strategy
	}

	// 3. Load and validate catalog
	retriever, err := retrieval.NewFixtureRetrieverFromFile(planCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// 4. Load the feedback script; an empty script accepts the first itinerary
	var script []types.Feedback
	if planFeedback != "" {
		script, err = loadFeedbackScript(planFeedback)
		if err != nil {
			return err
		}
	}

	// 5. Run the refinement loop
	printer := observability.NewPrinter(os.Stdout)
	opts := session.Options{
		MaxPasses: planMaxPasses,
		TopK:      planTopK,
		History:   history.NewWindow(0, 0),
	}
	if planVerbose {
		opts.OnProgress = func(e session.ProgressEvent) {
			fmt.Fprintf(os.Stdout, "[pass %d] %s: %s\n", e.Pass, e.State, e.Message)
		}
	}

	sess, err := session.New(prefs, retriever, opts)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if planVerbose {
		printer.PrintPreferences(prefs)
	}

	result, err := sess.Run(cmd.Context(), session.NewScriptProvider(script))
	if planVerbose {
		printer.PrintResult(string(result.State), result.Passes, result.Failed, result.FailureReason)
		printer.PrintItinerary(result.Itinerary, result.Passes)
	}
	if err != nil {
		return fmt.Errorf("refinement loop failed: %w", err)
	}

	// 6. Write the final itinerary
	if err := writeJSONOutput(planOutput, result); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully planned itinerary in %d passes to %s\n", result.Passes, planOutput)
	return nil
}

// loadFeedbackScript reads a JSON array of feedback objects.
func loadFeedbackScript(path string) ([]types.Feedback, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback script %s: %w", path, err)
	}

	var script []types.Feedback
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback script JSON: %w", err)
	}
	return script, nil
}
