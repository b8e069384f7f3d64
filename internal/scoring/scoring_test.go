package scoring

import (
	"testing"

	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisPrefs() *types.Preferences {
	return &types.Preferences{
		Destination: "Paris",
		Budget:      150,
		Interests:   []string{"museums"},
	}
}

func TestScore_InterestBudgetLocation(t *testing.T) {
	prefs := parisPrefs()

	louvre := types.CandidateItem{
		ID: "Louvre", Category: types.CategoryAttraction,
		Price: 20, Tags: []string{"museums"}, Location: "Paris",
	}
	eiffel := types.CandidateItem{
		ID: "EiffelTower", Category: types.CategoryAttraction,
		Price: 30, Tags: []string{"sightseeing"}, Location: "Paris",
	}

	louvreScore, matched := Score(louvre, prefs, DefaultWeights())
	eiffelScore, _ := Score(eiffel, prefs, DefaultWeights())

	// Louvre: interest + budget + location; Eiffel: budget + location
	assert.Equal(t, 3.0, louvreScore)
	assert.Equal(t, 2.0, eiffelScore)
	assert.Equal(t, []string{"museums"}, matched)
	assert.Greater(t, louvreScore, eiffelScore)
}

func TestScore_FavoriteAndAvoidAdjustments(t *testing.T) {
	prefs := parisPrefs()
	prefs.AddFavorite("Louvre")
	prefs.AddAvoid("EiffelTower")

	louvre := types.CandidateItem{ID: "Louvre", Price: 20, Tags: []string{"museums"}, Location: "Paris"}
	eiffel := types.CandidateItem{ID: "EiffelTower", Price: 30, Location: "Paris"}

	louvreScore, _ := Score(louvre, prefs, DefaultWeights())
	eiffelScore, _ := Score(eiffel, prefs, DefaultWeights())

	assert.Equal(t, 4.0, louvreScore)
	assert.Equal(t, 1.0, eiffelScore)
}

func TestScore_FloorAtZero(t *testing.T) {
	prefs := &types.Preferences{Destination: "Paris"}
	prefs.AddAvoid("airport_shuttle")

	item := types.CandidateItem{ID: "airport_shuttle", Price: 500, Location: "Lyon"}

	score, _ := Score(item, prefs, DefaultWeights())
	assert.Equal(t, 0.0, score)
}

func TestScore_NoBudgetCeiling(t *testing.T) {
	prefs := &types.Preferences{Destination: "Paris"}

	item := types.CandidateItem{ID: "suite", Price: 900, Location: "Paris"}

	// No ceiling set, so no budget bonus either way
	score, _ := Score(item, prefs, DefaultWeights())
	assert.Equal(t, 1.0, score)
}

func TestScore_Deterministic(t *testing.T) {
	prefs := parisPrefs()
	item := types.CandidateItem{ID: "Louvre", Price: 20, Tags: []string{"museums"}, Location: "Paris"}

	first, _ := Score(item, prefs, DefaultWeights())
	for i := 0; i < 10; i++ {
		score, _ := Score(item, prefs, DefaultWeights())
		assert.Equal(t, first, score)
	}
}

func TestScoreAll_PreservesInputOrder(t *testing.T) {
	prefs := parisPrefs()
	items := []types.CandidateItem{
		{ID: "b", Price: 20, Location: "Paris"},
		{ID: "a", Price: 20, Location: "Paris"},
	}

	scored := ScoreAll(items, prefs, DefaultWeights())
	require.Len(t, scored, 2)
	assert.Equal(t, "b", scored[0].ID)
	assert.Equal(t, "a", scored[1].ID)
	assert.Equal(t, scored[0].Score, scored[1].Score)
}

func TestScoreAll_Notes(t *testing.T) {
	prefs := parisPrefs()
	prefs.AddAvoid("EiffelTower")

	scored := ScoreAll([]types.CandidateItem{
		{ID: "Louvre", Price: 20, Tags: []string{"museums"}, Location: "Paris"},
		{ID: "EiffelTower", Price: 300, Location: "Paris"},
	}, prefs, DefaultWeights())

	assert.Contains(t, scored[0].Notes, "museums")
	assert.Contains(t, scored[0].Notes, "Within budget")
	assert.Contains(t, scored[1].Notes, "Over budget")
	assert.Contains(t, scored[1].Notes, "Previously disliked")
}

func TestWeightsFor_Strategies(t *testing.T) {
	prefs := parisPrefs()
	cheapFlight := types.CandidateItem{ID: "economy", Price: 100, Location: "Paris"}
	niceFlight := types.CandidateItem{ID: "business", Price: 800, Tags: []string{"museums"}, Location: "Paris"}

	cheapW := WeightsFor(types.StrategyCheapest)
	qualityW := WeightsFor(types.StrategyHighestQuality)

	cheapScoreA, _ := Score(cheapFlight, prefs, cheapW)
	cheapScoreB, _ := Score(niceFlight, prefs, cheapW)
	assert.Greater(t, cheapScoreA, cheapScoreB)

	qualityScoreA, _ := Score(cheapFlight, prefs, qualityW)
	qualityScoreB, _ := Score(niceFlight, prefs, qualityW)
	assert.Greater(t, qualityScoreB, qualityScoreA)

	assert.Equal(t, DefaultWeights(), WeightsFor(types.StrategyBalanced))
	assert.Equal(t, DefaultWeights(), WeightsFor(types.Strategy("unknown")))
}
