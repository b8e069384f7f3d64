package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/travel-planner/internal/types"
)

// loadPreferences reads a traveler preferences JSON file.
func loadPreferences(path string) (*types.Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file %s: %w", path, err)
	}

	var prefs types.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences JSON: %w", err)
	}

	if prefs.Destination == "" {
		return nil, fmt.Errorf("preferences file %s has no destination", path)
	}
	if prefs.Strategy != "" && !types.ValidStrategy(prefs.Strategy) {
		return nil, fmt.Errorf("preferences file %s has unknown strategy %q", path, prefs.Strategy)
	}

	return &prefs, nil
}

// writeJSONOutput marshals v with indentation and writes it to path, creating
// parent directories as needed.
func writeJSONOutput(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
