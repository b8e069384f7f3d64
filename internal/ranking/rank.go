// Package ranking sorts and truncates scored candidates for presentation.
package ranking

import (
	"sort"

	"github.com/jonathan/travel-planner/internal/scoring"
	"github.com/jonathan/travel-planner/internal/types"
)

// DefaultTopK is the number of items kept per category when no limit is given.
const DefaultTopK = 10

// Rank returns the top k items sorted by descending score. Ties keep their
// first-seen input order so that repeated runs with identical inputs produce
// identical rankings. An empty input yields an empty output.
func Rank(items []types.ScoredItem, k int) []types.ScoredItem {
	if k <= 0 {
		k = DefaultTopK
	}

	ranked := append([]types.ScoredItem(nil), items...)

	// Stable sort preserves input order among equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// RankCandidates scores unranked candidates against the preferences and
// returns the top k. Convenience composition of scoring and ranking.
func RankCandidates(items []types.CandidateItem, prefs *types.Preferences, k int) []types.ScoredItem {
	weights := scoring.WeightsFor(prefs.Strategy)
	return Rank(scoring.ScoreAll(items, prefs, weights), k)
}
