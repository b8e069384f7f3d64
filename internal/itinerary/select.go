package itinerary

import (
	"sort"

	"github.com/jonathan/travel-planner/internal/types"
)

// SelectWithinBudget greedily picks items whose combined price stays within
// the given total budget, preferring the best score-per-price ratio. Items
// with zero price are always affordable; their raw score stands in as their
// value. A budget of zero or less disables selection and returns the input
// as-is.
//
// The pick order is deterministic: ties on value fall back to the original
// ranked order.
func SelectWithinBudget(items []types.ScoredItem, budget float64) []types.ScoredItem {
	if budget <= 0 || len(items) == 0 {
		return items
	}

	// Index items so the result can be restored to ranked order
	type indexed struct {
		item  types.ScoredItem
		index int
		value float64
	}

	candidates := make([]indexed, 0, len(items))
	for i, item := range items {
		value := item.Score
		if item.Price > 0 {
			value = item.Score / item.Price
		}
		candidates = append(candidates, indexed{item: item, index: i, value: value})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].value > candidates[j].value
	})

	remaining := budget
	picked := make([]indexed, 0, len(candidates))
	for _, c := range candidates {
		if c.item.Price > remaining {
			continue
		}
		picked = append(picked, c)
		remaining -= c.item.Price
	}

	// Restore ranked order for presentation
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	out := make([]types.ScoredItem, 0, len(picked))
	for _, c := range picked {
		out = append(out, c.item)
	}
	return out
}
