package research

import (
	"testing"

	"github.com/jonathan/travel-planner/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCategoryQuery(t *testing.T) {
	assert.Contains(t, categoryQuery("Paris", types.CategoryFlight), "Paris")
	assert.Contains(t, categoryQuery("Paris", types.CategoryFlight), "flights")
	assert.Contains(t, categoryQuery("Paris", types.CategoryHotel), "hotels")
	assert.Contains(t, categoryQuery("Paris", types.CategoryAttraction), "attractions")
}

func TestDedupLinks(t *testing.T) {
	links := []string{
		"https://a.example/guide",
		"https://b.example/tips",
		"https://a.example/guide",
	}

	unique := dedupLinks(links)
	assert.Equal(t, []string{"https://a.example/guide", "https://b.example/tips"}, unique)
}

func TestDedupLinks_Empty(t *testing.T) {
	assert.Empty(t, dedupLinks(nil))
}

func TestGuideSeedNote(t *testing.T) {
	note := GuideSeedNote([]string{"https://a.example/guide", "https://b.example/tips"})
	assert.Equal(t, "Destination guides worth consulting: https://a.example/guide, https://b.example/tips", note)
}

func TestGuideSeedNote_Empty(t *testing.T) {
	assert.Empty(t, GuideSeedNote(nil))
}
