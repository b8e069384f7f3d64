package retrieval

import (
	"context"

	"github.com/jonathan/travel-planner/internal/types"
)

// Retriever produces unranked candidates for a category given the current
// preferences. The caller makes no assumption about the order of the
// returned sequence. Implementations must return a MissingPreferenceError
// when a required preference is absent and a RetrievalError when the
// underlying source fails.
type Retriever interface {
	Retrieve(ctx context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error)
}

// requirePreferences checks the fields every retrieval contract demands.
// Destination is the minimum a source needs to produce candidates.
func requirePreferences(prefs *types.Preferences) error {
	if prefs == nil || prefs.Destination == "" {
		return &MissingPreferenceError{Field: "destination"}
	}
	return nil
}
