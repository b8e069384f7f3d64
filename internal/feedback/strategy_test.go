package feedback

import (
	"testing"

	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
)

func itineraryWith(items ...types.ScoredItem) *types.Itinerary {
	return &types.Itinerary{Attractions: items}
}

func attraction(id string, price float64) types.ScoredItem {
	return types.ScoredItem{
		CandidateItem: types.CandidateItem{ID: id, Category: types.CategoryAttraction, Price: price},
	}
}

func TestSelectStrategy_DislikedOverBudgetSwitchesToCheapest(t *testing.T) {
	it := itineraryWith(attraction("spa", 300), attraction("opera", 200), attraction("park", 5))
	fb := types.Feedback{Disliked: []string{"spa", "opera"}}

	got := SelectStrategy(types.StrategyBalanced, fb, it, 150)
	assert.Equal(t, types.StrategyCheapest, got)
}

func TestSelectStrategy_LikedOverBudgetSwitchesToHighestQuality(t *testing.T) {
	it := itineraryWith(attraction("michelin", 400), attraction("park", 5))
	fb := types.Feedback{Liked: []string{"michelin"}}

	got := SelectStrategy(types.StrategyBalanced, fb, it, 150)
	assert.Equal(t, types.StrategyHighestQuality, got)
}

func TestSelectStrategy_NoSignalKeepsCurrent(t *testing.T) {
	it := itineraryWith(attraction("park", 5), attraction("museum", 20))

	got := SelectStrategy(types.StrategyCheapest, types.Feedback{Liked: []string{"park"}}, it, 150)
	assert.Equal(t, types.StrategyCheapest, got)

	// Empty feedback keeps current too
	got = SelectStrategy(types.StrategyHighestQuality, types.Feedback{}, it, 150)
	assert.Equal(t, types.StrategyHighestQuality, got)
}

func TestSelectStrategy_NoBudgetCeiling(t *testing.T) {
	it := itineraryWith(attraction("spa", 300))

	got := SelectStrategy(types.StrategyBalanced, types.Feedback{Disliked: []string{"spa"}}, it, 0)
	assert.Equal(t, types.StrategyBalanced, got)
}

func TestSelectStrategy_UnknownItemsIgnored(t *testing.T) {
	it := itineraryWith(attraction("park", 5))
	fb := types.Feedback{Disliked: []string{"not_in_itinerary"}}

	got := SelectStrategy(types.StrategyBalanced, fb, it, 150)
	assert.Equal(t, types.StrategyBalanced, got)
}

func TestSelectStrategy_EmptyCurrentDefaultsToBalanced(t *testing.T) {
	got := SelectStrategy("", types.Feedback{}, nil, 150)
	assert.Equal(t, types.StrategyBalanced, got)
}
