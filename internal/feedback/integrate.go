// Package feedback folds user reactions back into the preference set between
// refinement passes.
package feedback

import "github.com/jonathan/travel-planner/internal/types"

// Integrate returns a copy of the preferences updated with the given
// feedback. Liked item IDs join the favorites set and leave the avoid set;
// disliked item IDs join the avoid set and leave the favorites set. Disliked
// signals are applied last, so an ID present in both lists ends up avoided,
// never in both sets.
//
// Integration augments the preference set (set union); it never deletes
// unrelated fields. Applying the same feedback twice yields the same state
// as applying it once.
func Integrate(prefs *types.Preferences, fb types.Feedback) *types.Preferences {
	updated := prefs.Clone()

	for _, id := range fb.Liked {
		updated.AddFavorite(id)
		updated.RemoveAvoid(id)
	}

	// Applied after liked: disliked wins for IDs present in both lists
	for _, id := range fb.Disliked {
		updated.AddAvoid(id)
		updated.RemoveFavorite(id)
	}

	return updated
}
