package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the travel_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "travel_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// writeTestCatalog writes a small valid catalog file and returns its path
func writeTestCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.json")
	catalog := `{
		"items": [
			{"id": "fl_001", "category": "flight", "price": 120, "location": "Paris"},
			{"id": "hotel_001", "category": "hotel", "price": 90, "location": "Paris"},
			{"id": "Louvre", "name": "Louvre Museum", "category": "attraction", "price": 20, "tags": ["museums"], "location": "Paris"},
			{"id": "EiffelTower", "category": "attraction", "price": 30, "tags": ["sightseeing"], "location": "Paris"}
		]
	}`
	if err := os.WriteFile(path, []byte(catalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

// writeTestPreferences writes a minimal preferences file and returns its path
func writeTestPreferences(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "preferences.json")
	prefs := `{"destination": "Paris", "budget": 150, "interests": ["museums"]}`
	if err := os.WriteFile(path, []byte(prefs), 0644); err != nil {
		t.Fatalf("failed to write preferences: %v", err)
	}
	return path
}
