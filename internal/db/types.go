package db

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord represents a planning session record
type SessionRecord struct {
	ID          uuid.UUID  `json:"id"`
	Destination string     `json:"destination"`
	Strategy    string     `json:"strategy"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Pass artifact kind constants
const (
	KindItinerary   = "itinerary"
	KindFeedback    = "feedback"
	KindPreferences = "preferences"
)

// Session status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
