package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/config"
	"github.com/jonathan/travel-planner/internal/history"
	"github.com/jonathan/travel-planner/internal/llm"
	"github.com/jonathan/travel-planner/internal/research"
	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveCatalog   string
	serveConfig    string
	serveRecall    bool
	serveMaxPasses int
	serveTopK      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for creating planning sessions, submitting feedback, and streaming refinement runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Path to candidate catalog JSON file (omit to use discovered listings or Gemini recall)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to config JSON file providing defaults")
	serveCmd.Flags().BoolVar(&serveRecall, "recall", false, "Use Gemini recall even when search credentials are configured")
	serveCmd.Flags().IntVar(&serveMaxPasses, "max-passes", 0, "Default refinement pass cap for new sessions")
	serveCmd.Flags().IntVar(&serveTopK, "top-k", 0, "Default number of items kept per category")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Apply config file defaults; environment variables take precedence
	var fileCfg config.Config
	if serveConfig != "" {
		cfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		fileCfg = *cfg
	}
	if serveCatalog == "" {
		serveCatalog = fileCfg.Catalog
	}
	databaseURL := envOr("DATABASE_URL", fileCfg.DatabaseURL)
	geminiKey := envOr("GEMINI_API_KEY", fileCfg.APIKey)
	geminiModel := envOr("GEMINI_MODEL", fileCfg.RecallModel)

	// 2. Pick the candidate source: a catalog file, discovered listing
	// pages, or Gemini recall, in that order of preference
	retriever, cleanup, err := buildServeRetriever(cmd.Context(), geminiKey, geminiModel)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// 3. Start the server
	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL, // optional persistence
		Retriever:   retriever,
		MaxPasses:   serveMaxPasses,
		TopK:        serveTopK,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// buildServeRetriever selects the candidate source for the server. The
// returned cleanup func, when non-nil, must run at shutdown.
func buildServeRetriever(ctx context.Context, geminiKey, geminiModel string) (retrieval.Retriever, func(), error) {
	if serveCatalog != "" {
		r, err := retrieval.NewFixtureRetrieverFromFile(serveCatalog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return r, nil, nil
	}

	cseKey, cseCx := os.Getenv("GOOGLE_CSE_API_KEY"), os.Getenv("GOOGLE_CSE_CX")
	destination := os.Getenv("DEFAULT_DESTINATION")

	if !serveRecall && cseKey != "" && cseCx != "" {
		researcher, err := research.NewResearcher(ctx, cseKey, cseCx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create researcher: %w", err)
		}
		sources, err := researcher.DiscoverListingSources(ctx, destination)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to discover listing sources: %w", err)
		}
		return retrieval.NewHTMLSourceRetriever(sources, nil), nil, nil
	}

	if geminiKey == "" {
		return nil, nil, fmt.Errorf("either --catalog or the GEMINI_API_KEY environment variable is required")
	}
	client, err := llm.NewGeminiClient(ctx, geminiKey, geminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	cleanup := func() { _ = client.Close() }
	return retrieval.NewLLMRetriever(client, 0, recallTranscript(ctx, cseKey, cseCx, destination)), cleanup, nil
}

// recallTranscript seeds the recall prompt with discovered guide pages when
// search credentials and a default destination are configured. Seeding is
// best-effort; the recall source works without it.
func recallTranscript(ctx context.Context, cseKey, cseCx, destination string) *history.Window {
	if cseKey == "" || cseCx == "" || destination == "" {
		return nil
	}
	researcher, err := research.NewResearcher(ctx, cseKey, cseCx)
	if err != nil {
		return nil
	}
	seeds, err := researcher.FindGuideSeeds(ctx, destination)
	if err != nil || len(seeds) == 0 {
		return nil
	}

	window := history.NewWindow(0, 0)
	window.AddUser(research.GuideSeedNote(seeds))
	return window
}

// envOr returns the environment value for key, falling back to the config
// file value when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
