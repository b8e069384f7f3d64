// Package types provides type definitions for structured data used throughout the travel-planner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Strategy identifies the scoring strategy applied during a refinement pass.
type Strategy string

const (
	// StrategyBalanced weighs all scoring components equally.
	StrategyBalanced Strategy = "balanced"
	// StrategyCheapest emphasizes price fit over other components.
	StrategyCheapest Strategy = "cheapest"
	// StrategyHighestQuality emphasizes interest fit over price.
	StrategyHighestQuality Strategy = "highest_quality"
)

// ValidStrategy reports whether s is a known strategy name.
func ValidStrategy(s Strategy) bool {
	switch s {
	case StrategyBalanced, StrategyCheapest, StrategyHighestQuality:
		return true
	}
	return false
}

// Preferences is the evolving constraint set driving retrieval and scoring.
// It is owned by the session controller; feedback integration is the only
// code path that mutates favorites, avoid and strategy between passes.
type Preferences struct {
	Destination string   `json:"destination"`
	Budget      float64  `json:"budget,omitempty"`      // Per-item price ceiling; 0 means no ceiling
	TripBudget  float64  `json:"trip_budget,omitempty"` // Optional total budget for attraction selection
	Interests   []string `json:"interests,omitempty"`
	Favorites   []string `json:"favorites,omitempty"` // Item IDs the user liked; always sorted, no duplicates
	Avoid       []string `json:"avoid,omitempty"`     // Item IDs the user disliked; always sorted, no duplicates
	Strategy    Strategy `json:"strategy,omitempty"`
}

// Clone returns a deep copy of the preferences.
func (p *Preferences) Clone() *Preferences {
	if p == nil {
		return nil
	}
	out := *p
	out.Interests = append([]string(nil), p.Interests...)
	out.Favorites = append([]string(nil), p.Favorites...)
	out.Avoid = append([]string(nil), p.Avoid...)
	return &out
}

// IsFavorite reports whether the item ID is in the favorites set.
func (p *Preferences) IsFavorite(id string) bool {
	return containsString(p.Favorites, id)
}

// IsAvoided reports whether the item ID is in the avoid set.
func (p *Preferences) IsAvoided(id string) bool {
	return containsString(p.Avoid, id)
}

// AddFavorite inserts the item ID into the favorites set, keeping it sorted
// and free of duplicates.
func (p *Preferences) AddFavorite(id string) {
	p.Favorites = insertString(p.Favorites, id)
}

// AddAvoid inserts the item ID into the avoid set, keeping it sorted and
// free of duplicates.
func (p *Preferences) AddAvoid(id string) {
	p.Avoid = insertString(p.Avoid, id)
}

// RemoveFavorite removes the item ID from the favorites set if present.
func (p *Preferences) RemoveFavorite(id string) {
	p.Favorites = removeString(p.Favorites, id)
}

// RemoveAvoid removes the item ID from the avoid set if present.
func (p *Preferences) RemoveAvoid(id string) {
	p.Avoid = removeString(p.Avoid, id)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func insertString(list []string, s string) []string {
	if containsString(list, s) {
		return list
	}
	list = append(list, s)
	sort.Strings(list)
	return list
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
