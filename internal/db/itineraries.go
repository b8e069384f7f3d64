package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/travel-planner/internal/types"
)

// GetItineraryBySessionID loads the most recent itinerary stored for a session.
// Returns nil when no pass has been recorded yet.
func (db *DB) GetItineraryBySessionID(ctx context.Context, sessionID uuid.UUID) (*types.Itinerary, int, error) {
	content, pass, err := db.GetLatestPass(ctx, sessionID, KindItinerary)
	if err != nil {
		return nil, 0, err
	}
	if content == nil {
		return nil, 0, nil
	}

	var it types.Itinerary
	if err := json.Unmarshal(content, &it); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}
	return &it, pass, nil
}

// GetPreferencesBySessionID loads the preferences snapshot recorded for a pass.
func (db *DB) GetPreferencesBySessionID(ctx context.Context, sessionID uuid.UUID, pass int) (*types.Preferences, error) {
	content, err := db.GetPass(ctx, sessionID, pass, KindPreferences)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var prefs types.Preferences
	if err := json.Unmarshal(content, &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &prefs, nil
}

// GetFeedbackBySessionID loads the feedback recorded against a pass.
func (db *DB) GetFeedbackBySessionID(ctx context.Context, sessionID uuid.UUID, pass int) (*types.Feedback, error) {
	content, err := db.GetPass(ctx, sessionID, pass, KindFeedback)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var fb types.Feedback
	if err := json.Unmarshal(content, &fb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
	}
	return &fb, nil
}
