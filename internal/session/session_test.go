package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisCatalog() []types.CandidateItem {
	return []types.CandidateItem{
		{ID: "fl_001", Category: types.CategoryFlight, Price: 120, Location: "Paris"},
		{ID: "hotel_001", Category: types.CategoryHotel, Price: 90, Location: "Paris"},
		{ID: "hotel_002", Category: types.CategoryHotel, Price: 300, Location: "Paris"},
		{ID: "Louvre", Category: types.CategoryAttraction, Price: 20, Tags: []string{"museums"}, Location: "Paris"},
		{ID: "EiffelTower", Category: types.CategoryAttraction, Price: 30, Tags: []string{"sightseeing"}, Location: "Paris"},
	}
}

func parisPrefs() *types.Preferences {
	return &types.Preferences{
		Destination: "Paris",
		Budget:      150,
		Interests:   []string{"museums"},
	}
}

// failingRetriever fails a fixed number of times before succeeding.
type failingRetriever struct {
	mu       sync.Mutex
	failures int
	calls    int
	items    []types.CandidateItem
}

func (r *failingRetriever) Retrieve(_ context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if prefs == nil || prefs.Destination == "" {
		return nil, &retrieval.MissingPreferenceError{Field: "destination"}
	}
	if r.calls <= r.failures {
		return nil, &retrieval.RetrievalError{Message: "source unavailable"}
	}
	var out []types.CandidateItem
	for _, item := range r.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func TestSession_SinglePassAccept(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{})
	require.NoError(t, err)
	assert.Equal(t, StateInit, s.State())

	it, err := s.RunPass(context.Background())
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, StateAwaitingFeedback, s.State())
	assert.Equal(t, 1, s.Passes())

	// Louvre matches the museums interest and must rank first
	require.NotEmpty(t, it.Attractions)
	assert.Equal(t, "Louvre", it.Attractions[0].ID)

	require.NoError(t, s.SubmitFeedback(types.Feedback{Accept: true}))
	assert.Equal(t, StateDone, s.State())

	result := s.Result()
	assert.False(t, result.Failed)
	assert.Equal(t, 1, result.Passes)
	assert.Equal(t, it, result.Itinerary)
}

func TestSession_FeedbackRefinesNextPass(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{})
	require.NoError(t, err)

	_, err = s.RunPass(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.SubmitFeedback(types.Feedback{
		Liked:    []string{"Louvre"},
		Disliked: []string{"EiffelTower"},
	}))
	assert.Equal(t, StateIntegrating, s.State())

	prefs := s.Preferences()
	assert.Equal(t, []string{"Louvre"}, prefs.Favorites)
	assert.Equal(t, []string{"EiffelTower"}, prefs.Avoid)

	it, err := s.RunPass(context.Background())
	require.NoError(t, err)

	// EiffelTower now scores below Louvre by a wider margin
	require.Len(t, it.Attractions, 2)
	assert.Equal(t, "Louvre", it.Attractions[0].ID)
	assert.Greater(t, it.Attractions[0].Score, it.Attractions[1].Score+1)
}

func TestSession_TerminatesAtPassCap(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{MaxPasses: 3})
	require.NoError(t, err)

	// A provider that never accepts still terminates at the cap
	neverAccept := NewScriptProvider([]types.Feedback{
		{Disliked: []string{"EiffelTower"}},
		{Disliked: []string{"hotel_002"}},
		{Disliked: []string{"fl_001"}},
		{Disliked: []string{"Louvre"}},
	})

	result, err := s.Run(context.Background(), neverAccept)
	require.NoError(t, err)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 3, result.Passes)
	assert.False(t, result.Failed)
	assert.NotNil(t, result.Itinerary)
}

func TestSession_RetryOnceThenFail(t *testing.T) {
	// Two consecutive failures exhaust the single retry
	r := &failingRetriever{failures: 100, items: parisCatalog()}
	s, err := New(parisPrefs(), r, Options{Categories: []types.Category{types.CategoryHotel}})
	require.NoError(t, err)

	_, err = s.RunPass(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	result := s.Result()
	assert.True(t, result.Failed)
	assert.NotEmpty(t, result.FailureReason)
	// No pass completed, so the caller gets an empty itinerary
	require.NotNil(t, result.Itinerary)
	assert.True(t, result.Itinerary.IsEmpty())
}

func TestSession_RetryOnceRecovers(t *testing.T) {
	// A single transient failure is absorbed by the retry
	r := &failingRetriever{failures: 1, items: parisCatalog()}
	s, err := New(parisPrefs(), r, Options{Categories: []types.Category{types.CategoryHotel}})
	require.NoError(t, err)

	it, err := s.RunPass(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, it.Hotels)
	assert.Equal(t, StateAwaitingFeedback, s.State())
}

func TestSession_FailureKeepsLastItinerary(t *testing.T) {
	// First pass succeeds for all three categories (3 calls), then the
	// source goes down for good
	r := &failingRetriever{items: parisCatalog()}
	s, err := New(parisPrefs(), r, Options{})
	require.NoError(t, err)

	first, err := s.RunPass(context.Background())
	require.NoError(t, err)

	r.failures = 1000
	r.calls = 0

	require.NoError(t, s.SubmitFeedback(types.Feedback{Disliked: []string{"EiffelTower"}}))
	_, err = s.RunPass(context.Background())
	require.Error(t, err)

	result := s.Result()
	assert.True(t, result.Failed)
	assert.Equal(t, first, result.Itinerary)
}

func TestSession_MissingPreferenceNotRetried(t *testing.T) {
	r := &failingRetriever{items: parisCatalog()}
	s, err := New(&types.Preferences{}, r, Options{Categories: []types.Category{types.CategoryHotel}})
	require.NoError(t, err)

	_, err = s.RunPass(context.Background())
	require.Error(t, err)

	var missing *retrieval.MissingPreferenceError
	assert.ErrorAs(t, err, &missing)
	// Exactly one call: missing input is not retried
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, StateFailed, s.State())
}

func TestSession_EmptyCategoryIsNotAFailure(t *testing.T) {
	// Catalog has no flights at all
	catalog := []types.CandidateItem{
		{ID: "hotel_001", Category: types.CategoryHotel, Price: 90, Location: "Paris"},
	}
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(catalog), Options{})
	require.NoError(t, err)

	it, err := s.RunPass(context.Background())
	require.NoError(t, err)
	assert.Empty(t, it.Flights)
	assert.Empty(t, it.Attractions)
	assert.Len(t, it.Hotels, 1)
}

func TestSession_FeedbackTimeoutAccepts(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{
		FeedbackTimeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	result, err := s.Run(context.Background(), blockingProvider{})
	require.NoError(t, err)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 1, result.Passes)
}

// blockingProvider never returns feedback before the context expires.
type blockingProvider struct{}

func (blockingProvider) NextFeedback(ctx context.Context, _ *types.Itinerary) (types.Feedback, error) {
	<-ctx.Done()
	return types.Feedback{}, ctx.Err()
}

func TestSession_ProgressEvents(t *testing.T) {
	var states []State
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{
		OnProgress: func(e ProgressEvent) { states = append(states, e.State) },
	})
	require.NoError(t, err)

	_, err = s.RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []State{StateRetrieving, StateScoring, StateComposed, StateAwaitingFeedback}, states)
}

func TestSession_SubmitFeedbackWrongState(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{})
	require.NoError(t, err)

	assert.Error(t, s.SubmitFeedback(types.Feedback{Accept: true}))
}

func TestSession_RunPassWrongState(t *testing.T) {
	s, err := New(parisPrefs(), retrieval.NewFixtureRetriever(parisCatalog()), Options{})
	require.NoError(t, err)

	_, err = s.RunPass(context.Background())
	require.NoError(t, err)

	// AwaitingFeedback does not allow another pass
	_, err = s.RunPass(context.Background())
	assert.Error(t, err)
}

func TestSession_TripBudgetTrimsAttractions(t *testing.T) {
	prefs := parisPrefs()
	prefs.TripBudget = 25

	s, err := New(prefs, retrieval.NewFixtureRetriever(parisCatalog()), Options{})
	require.NoError(t, err)

	it, err := s.RunPass(context.Background())
	require.NoError(t, err)

	// Only the Louvre fits the 25 total budget
	require.Len(t, it.Attractions, 1)
	assert.Equal(t, "Louvre", it.Attractions[0].ID)
}

func TestScriptProvider_AcceptsWhenExhausted(t *testing.T) {
	p := NewScriptProvider([]types.Feedback{{Liked: []string{"Louvre"}}})

	fb, err := p.NextFeedback(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Louvre"}, fb.Liked)

	fb, err = p.NextFeedback(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, fb.Accept)
}
