//nolint:revive // types is a standard Go package name pattern
package types

// Itinerary is the composed, ranked output bundle presented to the user each
// pass. It is the only artifact that crosses the presentation boundary.
type Itinerary struct {
	Flights     []ScoredItem `json:"flights"`
	Hotels      []ScoredItem `json:"hotels"`
	Attractions []ScoredItem `json:"attractions"`
}

// CategoryItems returns the ranked items for the given category.
func (it *Itinerary) CategoryItems(c Category) []ScoredItem {
	if it == nil {
		return nil
	}
	switch c {
	case CategoryFlight:
		return it.Flights
	case CategoryHotel:
		return it.Hotels
	case CategoryAttraction:
		return it.Attractions
	}
	return nil
}

// IsEmpty reports whether no category has any items.
func (it *Itinerary) IsEmpty() bool {
	if it == nil {
		return true
	}
	return len(it.Flights) == 0 && len(it.Hotels) == 0 && len(it.Attractions) == 0
}

// ItemByID looks up an item across all categories by its identifier.
func (it *Itinerary) ItemByID(id string) (ScoredItem, bool) {
	if it == nil {
		return ScoredItem{}, false
	}
	for _, c := range AllCategories {
		for _, item := range it.CategoryItems(c) {
			if item.ID == id {
				return item, true
			}
		}
	}
	return ScoredItem{}, false
}
