//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies the kind of travel option a candidate represents.
type Category string

const (
	// CategoryFlight is a flight option.
	CategoryFlight Category = "flight"
	// CategoryHotel is a hotel option.
	CategoryHotel Category = "hotel"
	// CategoryAttraction is an attraction or activity option.
	CategoryAttraction Category = "attraction"
)

// AllCategories lists every retrieval category in presentation order.
var AllCategories = []Category{CategoryFlight, CategoryHotel, CategoryAttraction}

// ValidCategory reports whether c is a known category name.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFlight, CategoryHotel, CategoryAttraction:
		return true
	}
	return false
}

// CandidateItem represents one retrievable travel option. Candidates are
// immutable within a pass and regenerated on each retrieval call.
type CandidateItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
	Tags     []string `json:"tags,omitempty"`
	Location string   `json:"location"`
}

// ScoredItem is a candidate plus its relevance score for the current
// preferences. Scores are recomputed every pass and never persisted across
// preference changes.
type ScoredItem struct {
	CandidateItem
	Score            float64  `json:"score"`
	MatchedInterests []string `json:"matched_interests,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}
