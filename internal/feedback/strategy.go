package feedback

import "github.com/jonathan/travel-planner/internal/types"

// SelectStrategy picks the scoring strategy for the next pass from an
// explicit rule over the latest feedback, resolved against the itinerary the
// feedback refers to:
//
//   - a majority of disliked items priced over the budget ceiling switches
//     to the cheapest strategy
//   - a majority of liked items priced over the budget ceiling switches to
//     the highest-quality strategy
//   - otherwise the current strategy is kept
//
// Items not found in the itinerary carry no pricing signal and are ignored.
// Without a budget ceiling there is no over-budget signal to react to.
func SelectStrategy(current types.Strategy, fb types.Feedback, it *types.Itinerary, budget float64) types.Strategy {
	if current == "" {
		current = types.StrategyBalanced
	}
	if budget <= 0 || it == nil {
		return current
	}

	dislikedOver, dislikedTotal := countOverBudget(fb.Disliked, it, budget)
	likedOver, likedTotal := countOverBudget(fb.Liked, it, budget)

	if dislikedTotal > 0 && dislikedOver*2 > dislikedTotal {
		return types.StrategyCheapest
	}
	if likedTotal > 0 && likedOver*2 > likedTotal {
		return types.StrategyHighestQuality
	}
	return current
}

func countOverBudget(ids []string, it *types.Itinerary, budget float64) (over, total int) {
	for _, id := range ids {
		item, found := it.ItemByID(id)
		if !found {
			continue
		}
		total++
		if item.Price > budget {
			over++
		}
	}
	return over, total
}
