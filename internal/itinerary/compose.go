// Package itinerary merges ranked candidates per category into the output
// bundle presented to the user.
package itinerary

import "github.com/jonathan/travel-planner/internal/types"

// Compose aggregates the ranked category lists into a single itinerary.
// An absent category becomes an empty list rather than a failure.
func Compose(flights, hotels, attractions []types.ScoredItem) *types.Itinerary {
	return &types.Itinerary{
		Flights:     orEmpty(flights),
		Hotels:      orEmpty(hotels),
		Attractions: orEmpty(attractions),
	}
}

// ComposeByCategory builds an itinerary from a category-keyed map, which is
// the shape the session controller produces after parallel retrieval.
func ComposeByCategory(ranked map[types.Category][]types.ScoredItem) *types.Itinerary {
	return Compose(
		ranked[types.CategoryFlight],
		ranked[types.CategoryHotel],
		ranked[types.CategoryAttraction],
	)
}

func orEmpty(items []types.ScoredItem) []types.ScoredItem {
	if items == nil {
		return []types.ScoredItem{}
	}
	return items
}
