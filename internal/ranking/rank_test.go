package ranking

import (
	"testing"

	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id string, score float64) types.ScoredItem {
	return types.ScoredItem{
		CandidateItem: types.CandidateItem{ID: id},
		Score:         score,
	}
}

func TestRank_DescendingByScore(t *testing.T) {
	items := []types.ScoredItem{
		scored("low", 1),
		scored("high", 5),
		scored("mid", 3),
	}

	ranked := Rank(items, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "low", ranked[2].ID)
}

func TestRank_TruncatesToK(t *testing.T) {
	items := make([]types.ScoredItem, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, scored("item", float64(i)))
	}

	assert.Len(t, Rank(items, 10), 10)
	assert.Len(t, Rank(items, 3), 3)
	// k <= 0 falls back to the default
	assert.Len(t, Rank(items, 0), DefaultTopK)
}

func TestRank_StableOnTies(t *testing.T) {
	items := []types.ScoredItem{
		scored("first", 2),
		scored("second", 2),
		scored("third", 2),
	}

	ranked := Rank(items, 10)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, 10))
	assert.Empty(t, Rank([]types.ScoredItem{}, 10))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	items := []types.ScoredItem{
		scored("low", 1),
		scored("high", 5),
	}

	Rank(items, 10)
	assert.Equal(t, "low", items[0].ID)
}

func TestRankCandidates_ParisScenario(t *testing.T) {
	prefs := &types.Preferences{
		Destination: "Paris",
		Budget:      150,
		Interests:   []string{"museums"},
	}
	candidates := []types.CandidateItem{
		{ID: "Louvre", Price: 20, Tags: []string{"museums"}, Location: "Paris"},
		{ID: "EiffelTower", Price: 30, Tags: []string{"sightseeing"}, Location: "Paris"},
	}

	ranked := RankCandidates(candidates, prefs, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Louvre", ranked[0].ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}
