//nolint:revive // types is a standard Go package name pattern
package types

// Feedback carries the user's reaction to one composed itinerary. Liked and
// Disliked hold item identifiers; Accept signals that the current itinerary
// should be taken as final with no further refinement.
type Feedback struct {
	Liked    []string `json:"liked,omitempty"`
	Disliked []string `json:"disliked,omitempty"`
	Accept   bool     `json:"accept,omitempty"`
}

// IsEmpty reports whether the feedback carries no signals at all.
func (f Feedback) IsEmpty() bool {
	return len(f.Liked) == 0 && len(f.Disliked) == 0 && !f.Accept
}
