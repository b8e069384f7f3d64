// Package scoring assigns relevance scores to candidate items against the
// current preferences.
package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/travel-planner/internal/types"
)

// Weights control the contribution of each scoring component. The default
// policy awards one point per component; strategies shift the balance.
type Weights struct {
	Interest float64 // Per matching interest tag
	Price    float64 // Price within budget ceiling
	Location float64 // Location equals destination
	Favorite float64 // Item is in the favorites set
	Avoid    float64 // Penalty when item is in the avoid set
}

// DefaultWeights returns the baseline policy: +1 per matching interest tag,
// +1 if price is within budget, +1 if location matches the destination,
// +1 for favorites and -1 for avoided items.
func DefaultWeights() Weights {
	return Weights{Interest: 1, Price: 1, Location: 1, Favorite: 1, Avoid: 1}
}

// WeightsFor returns the weights for a scoring strategy. Unknown strategies
// fall back to the balanced default.
func WeightsFor(strategy types.Strategy) Weights {
	switch strategy {
	case types.StrategyCheapest:
		// Budget fit dominates; interest matches still break ties
		return Weights{Interest: 0.5, Price: 3, Location: 1, Favorite: 1, Avoid: 1}
	case types.StrategyHighestQuality:
		// Interest fit dominates; budget fit is nearly ignored
		return Weights{Interest: 2, Price: 0.25, Location: 1, Favorite: 1, Avoid: 1}
	default:
		return DefaultWeights()
	}
}

// Score computes the relevance score of one candidate against the current
// preferences. It is a pure function of its inputs: identical inputs always
// produce an identical score. The score never drops below zero.
// It also returns the interest tags that matched, for explanation output.
func Score(item types.CandidateItem, prefs *types.Preferences, w Weights) (float64, []string) {
	score := 0.0

	// Interest tag matches (case-insensitive)
	var matched []string
	for _, interest := range prefs.Interests {
		for _, tag := range item.Tags {
			if strings.EqualFold(interest, tag) {
				score += w.Interest
				matched = append(matched, tag)
				break
			}
		}
	}

	// Budget fit: only meaningful when a ceiling is set
	if prefs.Budget > 0 && item.Price <= prefs.Budget {
		score += w.Price
	}

	// Location match
	if prefs.Destination != "" && strings.EqualFold(item.Location, prefs.Destination) {
		score += w.Location
	}

	// Feedback-derived adjustments
	if prefs.IsFavorite(item.ID) {
		score += w.Favorite
	}
	if prefs.IsAvoided(item.ID) {
		score -= w.Avoid
	}

	// Score floor
	if score < 0 {
		score = 0
	}

	return score, matched
}

// ScoreAll scores every candidate, preserving the input order so that
// downstream ranking can break ties by first-seen position.
func ScoreAll(items []types.CandidateItem, prefs *types.Preferences, w Weights) []types.ScoredItem {
	scored := make([]types.ScoredItem, 0, len(items))
	for _, item := range items {
		score, matched := Score(item, prefs, w)
		scored = append(scored, types.ScoredItem{
			CandidateItem:    item,
			Score:            score,
			MatchedInterests: matched,
			Notes:            describeScore(score, matched, item, prefs),
		})
	}
	return scored
}

// describeScore creates a brief explanation of the score.
func describeScore(score float64, matched []string, item types.CandidateItem, prefs *types.Preferences) string {
	var parts []string

	if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("Matches interests (%s)", strings.Join(matched, ", ")))
	} else {
		parts = append(parts, "No interest matches")
	}

	if prefs.Budget > 0 {
		if item.Price <= prefs.Budget {
			parts = append(parts, "Within budget")
		} else {
			parts = append(parts, "Over budget")
		}
	}

	if prefs.IsFavorite(item.ID) {
		parts = append(parts, "Previously liked")
	}
	if prefs.IsAvoided(item.ID) {
		parts = append(parts, "Previously disliked")
	}

	return strings.Join(parts, ". ")
}
