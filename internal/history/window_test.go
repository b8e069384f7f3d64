package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_AddAndRender(t *testing.T) {
	w := NewWindow(0, 0)
	w.AddUser("Plan a trip to Paris, interested in museums")
	w.AddAgent("Proposed 3 attractions, 2 hotels, 1 flight")

	rendered := w.Render()
	assert.Contains(t, rendered, "User: Plan a trip to Paris")
	assert.Contains(t, rendered, "Planner: Proposed 3 attractions")
}

func TestWindow_EmptyRender(t *testing.T) {
	w := NewWindow(0, 0)
	assert.Equal(t, "(no earlier passes)", w.Render())
}

func TestWindow_CompressesWhenOverBudget(t *testing.T) {
	// Tiny budget so compression triggers quickly; keep 2 entries verbatim
	w := NewWindow(50, 2)

	for i := 0; i < 8; i++ {
		w.AddUser(fmt.Sprintf("disliked item_%d because it was over budget", i))
	}

	entries := w.Entries()
	// Transcript must have been compressed at least once
	require.Less(t, len(entries), 8)
	assert.Equal(t, RoleSummary, entries[0].Role)
	assert.Contains(t, entries[0].Content, "EARLIER PASSES SUMMARY:")

	// The most recent entry is always verbatim
	last := entries[len(entries)-1]
	assert.Equal(t, RoleUser, last.Role)
	assert.Contains(t, last.Content, "item_7")
}

func TestWindow_TokenEstimateTracksContent(t *testing.T) {
	w := NewWindow(0, 0)
	assert.Equal(t, 0, w.TokenEstimate())

	w.AddUser(strings.Repeat("a", 40))
	assert.Equal(t, 11, w.TokenEstimate())
}

func TestWindow_RecentEntriesSurviveCompression(t *testing.T) {
	w := NewWindow(30, 3)

	for i := 0; i < 10; i++ {
		w.AddAgent(fmt.Sprintf("pass %d itinerary with several items included", i))
	}

	entries := w.Entries()
	// Summary plus at most the verbatim tail and the newly added entry
	require.LessOrEqual(t, len(entries), 5)

	var verbatim int
	for _, e := range entries {
		if e.Role != RoleSummary {
			verbatim++
		}
	}
	assert.GreaterOrEqual(t, verbatim, 1)
}

func TestSummarize_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 300)
	s := summarize([]Entry{{Role: RoleUser, Content: long}})
	assert.Less(t, len(s), 200)
	assert.Contains(t, s, "...")
}
