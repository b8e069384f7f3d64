package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/travel-planner/internal/schemas"
	"github.com/jonathan/travel-planner/internal/types"
)

// Catalog is the document shape of a candidate catalog file.
type Catalog struct {
	Items []types.CandidateItem `json:"items"`
}

// FixtureRetriever serves candidates from an in-memory catalog. It backs the
// CLI's file-based flow and doubles as the test double for the session
// controller.
type FixtureRetriever struct {
	items []types.CandidateItem
}

// NewFixtureRetriever creates a retriever over the given items.
func NewFixtureRetriever(items []types.CandidateItem) *FixtureRetriever {
	return &FixtureRetriever{items: items}
}

// NewFixtureRetrieverFromFile loads a catalog JSON file, validates it against
// the catalog schema, and returns a retriever over its items.
func NewFixtureRetrieverFromFile(path string) (*FixtureRetriever, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if err := schemas.ValidateCatalog(data); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return NewFixtureRetriever(catalog.Items), nil
}

// Retrieve returns every catalog item in the requested category. The catalog
// is not pre-filtered by destination; the scorer discriminates on location.
func (r *FixtureRetriever) Retrieve(ctx context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RetrievalError{Message: "retrieval canceled", Cause: err}
	}
	if err := requirePreferences(prefs); err != nil {
		return nil, err
	}
	if !types.ValidCategory(category) {
		return nil, &RetrievalError{Message: fmt.Sprintf("unknown category %q", category)}
	}

	var out []types.CandidateItem
	for _, item := range r.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}
