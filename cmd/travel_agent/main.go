// Package main provides the entry point for the travel planner CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "travel_agent",
	Short: "Preference-driven travel itinerary planner",
	Long:  "Travel agent composes flight, hotel and attraction itineraries from a candidate catalog and refines them over feedback passes until the traveler accepts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
