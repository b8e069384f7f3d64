package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_AddFavorite_NoDuplicates(t *testing.T) {
	p := &Preferences{Destination: "Paris"}

	p.AddFavorite("Louvre")
	p.AddFavorite("Louvre")
	p.AddFavorite("EiffelTower")

	require.Len(t, p.Favorites, 2)
	// Sets stay sorted for deterministic serialization
	assert.Equal(t, []string{"EiffelTower", "Louvre"}, p.Favorites)
	assert.True(t, p.IsFavorite("Louvre"))
	assert.False(t, p.IsFavorite("Orsay"))
}

func TestPreferences_RemoveAvoid(t *testing.T) {
	p := &Preferences{}
	p.AddAvoid("EiffelTower")
	p.AddAvoid("Orsay")

	p.RemoveAvoid("EiffelTower")

	assert.Equal(t, []string{"Orsay"}, p.Avoid)
	assert.False(t, p.IsAvoided("EiffelTower"))

	p.RemoveAvoid("Orsay")
	assert.Nil(t, p.Avoid)
}

func TestPreferences_Clone_Independent(t *testing.T) {
	p := &Preferences{
		Destination: "Paris",
		Budget:      150,
		Interests:   []string{"museums"},
		Favorites:   []string{"Louvre"},
	}

	clone := p.Clone()
	clone.AddFavorite("Orsay")
	clone.Interests = append(clone.Interests, "food")

	assert.Equal(t, []string{"Louvre"}, p.Favorites)
	assert.Equal(t, []string{"museums"}, p.Interests)
	assert.Equal(t, "Paris", clone.Destination)
}

func TestValidStrategy(t *testing.T) {
	assert.True(t, ValidStrategy(StrategyBalanced))
	assert.True(t, ValidStrategy(StrategyCheapest))
	assert.True(t, ValidStrategy(StrategyHighestQuality))
	assert.False(t, ValidStrategy(Strategy("random")))
}

func TestValidCategory(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory(Category("cruise")))
}

func TestItinerary_ItemByID(t *testing.T) {
	it := &Itinerary{
		Hotels: []ScoredItem{
			{CandidateItem: CandidateItem{ID: "hotel_001", Category: CategoryHotel}},
		},
		Attractions: []ScoredItem{
			{CandidateItem: CandidateItem{ID: "Louvre", Category: CategoryAttraction}},
		},
	}

	item, found := it.ItemByID("Louvre")
	require.True(t, found)
	assert.Equal(t, CategoryAttraction, item.Category)

	_, found = it.ItemByID("missing")
	assert.False(t, found)

	assert.False(t, it.IsEmpty())
	assert.True(t, (&Itinerary{}).IsEmpty())
}
