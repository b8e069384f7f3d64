package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []types.CandidateItem {
	return []types.CandidateItem{
		{ID: "fl_001", Category: types.CategoryFlight, Price: 120, Location: "Paris"},
		{ID: "hotel_001", Category: types.CategoryHotel, Price: 90, Location: "Paris"},
		{ID: "Louvre", Category: types.CategoryAttraction, Price: 20, Tags: []string{"museums"}, Location: "Paris"},
		{ID: "EiffelTower", Category: types.CategoryAttraction, Price: 30, Tags: []string{"sightseeing"}, Location: "Paris"},
	}
}

func TestFixtureRetriever_FiltersByCategory(t *testing.T) {
	r := NewFixtureRetriever(testCatalog())
	prefs := &types.Preferences{Destination: "Paris"}

	attractions, err := r.Retrieve(context.Background(), types.CategoryAttraction, prefs)
	require.NoError(t, err)
	require.Len(t, attractions, 2)
	assert.Equal(t, "Louvre", attractions[0].ID)

	flights, err := r.Retrieve(context.Background(), types.CategoryFlight, prefs)
	require.NoError(t, err)
	assert.Len(t, flights, 1)
}

func TestFixtureRetriever_MissingDestination(t *testing.T) {
	r := NewFixtureRetriever(testCatalog())

	_, err := r.Retrieve(context.Background(), types.CategoryHotel, &types.Preferences{})
	require.Error(t, err)

	var missing *MissingPreferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "destination", missing.Field)

	_, err = r.Retrieve(context.Background(), types.CategoryHotel, nil)
	assert.ErrorAs(t, err, &missing)
}

func TestFixtureRetriever_UnknownCategory(t *testing.T) {
	r := NewFixtureRetriever(testCatalog())

	_, err := r.Retrieve(context.Background(), types.Category("cruise"), &types.Preferences{Destination: "Paris"})
	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}

func TestFixtureRetriever_CanceledContext(t *testing.T) {
	r := NewFixtureRetriever(testCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Retrieve(ctx, types.CategoryHotel, &types.Preferences{Destination: "Paris"})
	var retrievalErr *RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFixtureRetriever_EmptyCategory(t *testing.T) {
	r := NewFixtureRetriever([]types.CandidateItem{
		{ID: "hotel_001", Category: types.CategoryHotel, Price: 90, Location: "Paris"},
	})

	flights, err := r.Retrieve(context.Background(), types.CategoryFlight, &types.Preferences{Destination: "Paris"})
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestNewFixtureRetrieverFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	content := `{
		"items": [
			{"id": "Louvre", "name": "Louvre Museum", "category": "attraction",
			 "price": 20, "tags": ["museums"], "location": "Paris"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := NewFixtureRetrieverFromFile(path)
	require.NoError(t, err)

	items, err := r.Retrieve(context.Background(), types.CategoryAttraction, &types.Preferences{Destination: "Paris"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Louvre Museum", items[0].Name)
}

func TestNewFixtureRetrieverFromFile_InvalidCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	// Missing required location field
	content := `{"items": [{"id": "Louvre", "category": "attraction", "price": 20}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewFixtureRetrieverFromFile(path)
	assert.Error(t, err)
}

func TestNewFixtureRetrieverFromFile_MissingFile(t *testing.T) {
	_, err := NewFixtureRetrieverFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
