package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/session"
	"github.com/jonathan/travel-planner/internal/types"
)

var validate = validator.New()

// CreateSessionRequest represents the request body for POST /sessions
type CreateSessionRequest struct {
	Destination string   `json:"destination" validate:"required"`
	Budget      float64  `json:"budget" validate:"gte=0"`
	TripBudget  float64  `json:"trip_budget" validate:"gte=0"`
	Interests   []string `json:"interests,omitempty"`
	Favorites   []string `json:"favorites,omitempty"`
	Avoid       []string `json:"avoid,omitempty"`
	Strategy    string   `json:"strategy,omitempty" validate:"omitempty,oneof=balanced cheapest highest_quality"`
	TopK        int      `json:"top_k,omitempty" validate:"gte=0"`
	MaxPasses   int      `json:"max_passes,omitempty" validate:"gte=0"`
}

// FeedbackRequest represents the request body for POST /sessions/{id}/feedback
type FeedbackRequest struct {
	Liked    []string `json:"liked,omitempty"`
	Disliked []string `json:"disliked,omitempty"`
	Accept   bool     `json:"accept,omitempty"`
}

// SessionResponse represents the state of a session after an operation
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	State     string           `json:"state"`
	Passes    int              `json:"passes"`
	Itinerary *types.Itinerary `json:"itinerary,omitempty"`
}

// StreamRequest represents the request body for POST /sessions/stream.
// The feedback script is replayed after each pass; when it runs out the
// itinerary is accepted.
type StreamRequest struct {
	CreateSessionRequest
	Feedback []FeedbackRequest `json:"feedback,omitempty"`
}

func (req *CreateSessionRequest) preferences() *types.Preferences {
	return &types.Preferences{
		Destination: req.Destination,
		Budget:      req.Budget,
		TripBudget:  req.TripBudget,
		Interests:   req.Interests,
		Favorites:   req.Favorites,
		Avoid:       req.Avoid,
		Strategy:    types.Strategy(req.Strategy),
	}
}

func (s *Server) newSession(req *CreateSessionRequest, onProgress session.ProgressCallback) (*session.Session, error) {
	maxPasses := req.MaxPasses
	if maxPasses == 0 {
		maxPasses = s.maxPasses
	}
	topK := req.TopK
	if topK == 0 {
		topK = s.topK
	}

	return session.New(req.preferences(), s.retriever, session.Options{
		MaxPasses:  maxPasses,
		TopK:       topK,
		OnProgress: onProgress,
	})
}

// handleCreateSession starts a new planning session and runs the first pass
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	sess, err := s.newSession(&req, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.storeSession(sess)
	s.persistCreate(r, sess, &req)

	it, err := sess.RunPass(r.Context())
	if err != nil {
		s.persistState(r, sess)
		s.errorResponse(w, http.StatusBadGateway, "First pass failed: "+err.Error())
		return
	}
	s.persistPass(r, sess, it)

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID().String(),
		State:     string(sess.State()),
		Passes:    sess.Passes(),
		Itinerary: it,
	})
}

// handleListSessions returns all live sessions and, when persistence is
// configured, stored session records matching the optional destination,
// status and limit query parameters
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]SessionResponse, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, SessionResponse{
			SessionID: sess.ID().String(),
			State:     string(sess.State()),
			Passes:    sess.Passes(),
		})
	}
	s.mu.RUnlock()

	payload := map[string]any{"sessions": out}

	if s.db != nil {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		records, err := s.db.ListSessions(r.Context(), db.SessionFilters{
			Destination: r.URL.Query().Get("destination"),
			Status:      r.URL.Query().Get("status"),
			Limit:       limit,
		})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		payload["stored"] = records
	}

	s.jsonResponse(w, http.StatusOK, payload)
}

// handleGetSession returns the status of a session, falling back to the
// stored record when the session is no longer in memory
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseSessionID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if sess, ok := s.liveSession(id); ok {
		s.jsonResponse(w, http.StatusOK, SessionResponse{
			SessionID: sess.ID().String(),
			State:     string(sess.State()),
			Passes:    sess.Passes(),
		})
		return
	}

	rec, err := s.storedSessionRecord(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id":   rec.ID.String(),
		"destination":  rec.Destination,
		"strategy":     rec.Strategy,
		"state":        rec.Status,
		"created_at":   rec.CreatedAt,
		"completed_at": rec.CompletedAt,
	})
}

// handleGetItinerary returns the most recent composed itinerary of a session,
// falling back to the latest stored pass when the session is not in memory
func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseSessionID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if sess, ok := s.liveSession(id); ok {
		result := sess.Result()
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"session_id":     result.SessionID.String(),
			"state":          string(result.State),
			"passes":         result.Passes,
			"itinerary":      result.Itinerary,
			"failed":         result.Failed,
			"failure_reason": result.FailureReason,
		})
		return
	}

	rec, err := s.storedSessionRecord(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	it, pass, err := s.db.GetItineraryBySessionID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if it == nil {
		it = &types.Itinerary{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id": id.String(),
		"state":      rec.Status,
		"passes":     pass,
		"itinerary":  it,
		"failed":     rec.Status == db.StatusFailed,
	})
}

// handleGetPass returns the stored artifacts of one refinement pass: the
// itinerary composed on that pass, the preference snapshot behind it, and
// the feedback submitted against it
func (s *Server) handleGetPass(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseSessionID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	pass, err := strconv.Atoi(r.PathValue("pass"))
	if err != nil || pass < 1 {
		verr := &ErrValidation{Field: "pass", Message: "pass must be a positive integer"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	if _, err := s.storedSessionRecord(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ctx := r.Context()
	itRaw, err := s.db.GetPass(ctx, id, pass, db.KindItinerary)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	prefs, err := s.db.GetPreferencesBySessionID(ctx, id, pass)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	fb, err := s.db.GetFeedbackBySessionID(ctx, id, pass)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if itRaw == nil && prefs == nil && fb == nil {
		s.errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("no artifacts recorded for pass %d of session %s", pass, id))
		return
	}

	var it *types.Itinerary
	if itRaw != nil {
		it = &types.Itinerary{}
		if err := json.Unmarshal(itRaw, it); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to unmarshal itinerary: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id":  id.String(),
		"pass":        pass,
		"itinerary":   it,
		"preferences": prefs,
		"feedback":    fb,
	})
}

// handleDeleteSession removes a session from memory and, when persistence is
// configured, deletes its stored record and pass artifacts
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseSessionID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.mu.Lock()
	_, live := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	stored := false
	if s.db != nil {
		if err := s.db.DeleteSession(r.Context(), id); err == nil {
			stored = true
		}
	}

	if !live && !stored {
		nf := &ErrSessionNotFound{SessionID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"session_id": id.String(),
		"status":     "deleted",
	})
}

// storedSessionRecord loads a session record from the store. Reports
// ErrSessionNotFound when persistence is off or the record does not exist.
func (s *Server) storedSessionRecord(ctx context.Context, id uuid.UUID) (*db.SessionRecord, error) {
	if s.db == nil {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	rec, err := s.db.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return rec, nil
}

// handleFeedback integrates feedback into a session and runs the next pass
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if state := sess.State(); state == session.StateDone || state == session.StateFailed {
		finished := &ErrSessionFinished{SessionID: sess.ID(), State: string(state)}
		s.errorResponse(w, HTTPStatus(finished), finished.Error())
		return
	}

	fb := types.Feedback{Liked: req.Liked, Disliked: req.Disliked, Accept: req.Accept}
	s.persistFeedback(r, sess, fb)

	if err := sess.SubmitFeedback(fb); err != nil {
		s.errorResponse(w, http.StatusConflict, err.Error())
		return
	}

	if sess.State() == session.StateDone {
		s.persistState(r, sess)
		s.jsonResponse(w, http.StatusOK, SessionResponse{
			SessionID: sess.ID().String(),
			State:     string(sess.State()),
			Passes:    sess.Passes(),
			Itinerary: sess.Result().Itinerary,
		})
		return
	}

	it, err := sess.RunPass(r.Context())
	if err != nil {
		s.persistState(r, sess)
		s.errorResponse(w, http.StatusBadGateway, "Pass failed: "+err.Error())
		return
	}
	s.persistPass(r, sess, it)

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID().String(),
		State:     string(sess.State()),
		Passes:    sess.Passes(),
		Itinerary: it,
	})
}

// handleAccept finishes a session with its current itinerary
func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sess.Accept()
	s.persistState(r, sess)

	result := sess.Result()
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: result.SessionID.String(),
		State:     string(result.State),
		Passes:    result.Passes,
		Itinerary: result.Itinerary,
	})
}

// handleSessionStream runs a full session with scripted feedback, streaming
// progress as Server-Sent Events
func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	var req StreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req.CreateSessionRequest); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess, err := s.newSession(&req.CreateSessionRequest, func(e session.ProgressEvent) {
		sse.WriteEvent("progress", e) //nolint:errcheck
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	s.storeSession(sess)
	s.persistCreate(r, sess, &req.CreateSessionRequest)

	script := make([]types.Feedback, 0, len(req.Feedback))
	for _, fb := range req.Feedback {
		script = append(script, types.Feedback{Liked: fb.Liked, Disliked: fb.Disliked, Accept: fb.Accept})
	}

	result, err := sess.Run(r.Context(), session.NewScriptProvider(script))
	s.persistState(r, sess)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(result.SessionID.String(), string(result.State), result.Passes)
}

// persistCreate records a new session when persistence is configured.
// Persistence is best-effort; failures are logged and never fail the request.
func (s *Server) persistCreate(r *http.Request, sess *session.Session, req *CreateSessionRequest) {
	if s.db == nil {
		return
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = string(types.StrategyBalanced)
	}
	if err := s.db.CreateSession(r.Context(), sess.ID(), req.Destination, strategy); err != nil {
		log.Printf("Failed to persist session %s: %v", sess.ID(), err)
	}
}

// persistPass stores the itinerary and preference snapshot for the pass that
// just completed.
func (s *Server) persistPass(r *http.Request, sess *session.Session, it *types.Itinerary) {
	if s.db == nil {
		return
	}
	ctx := r.Context()
	pass := sess.Passes()
	if err := s.db.SavePass(ctx, sess.ID(), pass, db.KindItinerary, it); err != nil {
		log.Printf("Failed to persist itinerary for session %s: %v", sess.ID(), err)
	}
	if err := s.db.SavePass(ctx, sess.ID(), pass, db.KindPreferences, sess.Preferences()); err != nil {
		log.Printf("Failed to persist preferences for session %s: %v", sess.ID(), err)
	}
	s.persistState(r, sess)
}

func (s *Server) persistFeedback(r *http.Request, sess *session.Session, fb types.Feedback) {
	if s.db == nil {
		return
	}
	if err := s.db.SavePass(r.Context(), sess.ID(), sess.Passes(), db.KindFeedback, fb); err != nil {
		log.Printf("Failed to persist feedback for session %s: %v", sess.ID(), err)
	}
}

// persistState mirrors terminal states to the session record.
func (s *Server) persistState(r *http.Request, sess *session.Session) {
	if s.db == nil {
		return
	}
	var status string
	switch sess.State() {
	case session.StateDone:
		status = db.StatusCompleted
	case session.StateFailed:
		status = db.StatusFailed
	default:
		return
	}
	if err := s.db.CompleteSession(r.Context(), sess.ID(), status); err != nil {
		log.Printf("Failed to persist session state for %s: %v", sess.ID(), err)
	}
}

// extractValidationErrors renders validator errors as a readable message.
func extractValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
