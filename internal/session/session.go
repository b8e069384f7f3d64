// Package session orchestrates the refinement loop: retrieve, score, rank,
// compose, collect feedback, integrate, repeat until acceptance or the pass
// cap is reached.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/travel-planner/internal/feedback"
	"github.com/jonathan/travel-planner/internal/history"
	"github.com/jonathan/travel-planner/internal/itinerary"
	"github.com/jonathan/travel-planner/internal/ranking"
	"github.com/jonathan/travel-planner/internal/retrieval"
	"github.com/jonathan/travel-planner/internal/types"
)

// State names a position in the refinement loop state machine.
type State string

// Session states. Retrieving, Scoring, Composed and Integrating are
// transient; AwaitingFeedback is the suspension point; Done and Failed are
// terminal.
const (
	StateInit             State = "init"
	StateRetrieving       State = "retrieving"
	StateScoring          State = "scoring"
	StateComposed         State = "composed"
	StateAwaitingFeedback State = "awaiting_feedback"
	StateIntegrating      State = "integrating"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// DefaultMaxPasses caps the number of refinement passes to guarantee
// termination.
const DefaultMaxPasses = 5

// ProgressEvent reports a state transition during a refinement pass.
type ProgressEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Pass      int       `json:"pass"`
	State     State     `json:"state"`
	Message   string    `json:"message"`
	Content   any       `json:"content,omitempty"`
}

// ProgressCallback is called on every state transition.
type ProgressCallback func(event ProgressEvent)

// FeedbackProvider supplies user feedback for a composed itinerary. It is
// the presentation boundary for the blocking Run loop; implementations may
// prompt a human, read a script, or bridge to an HTTP caller.
type FeedbackProvider interface {
	NextFeedback(ctx context.Context, it *types.Itinerary) (types.Feedback, error)
}

// Options configures a session.
type Options struct {
	MaxPasses       int              // Pass cap; defaults to DefaultMaxPasses
	TopK            int              // Items kept per category; defaults to ranking.DefaultTopK
	Categories      []types.Category // Categories to retrieve; defaults to all
	FeedbackTimeout time.Duration    // Run only: waiting longer than this counts as acceptance; 0 waits indefinitely
	OnProgress      ProgressCallback // Optional state transition callback
	History         *history.Window  // Optional transcript fed to LLM-backed retrievers
}

// Result is the terminal outcome of a session. On failure Itinerary holds
// the last successfully composed itinerary, or an empty one if no pass
// completed. A partial itinerary is never presented as complete.
type Result struct {
	SessionID     uuid.UUID        `json:"session_id"`
	State         State            `json:"state"`
	Passes        int              `json:"passes"`
	Itinerary     *types.Itinerary `json:"itinerary"`
	Failed        bool             `json:"failed"`
	FailureReason string           `json:"failure_reason,omitempty"`
}

// Session runs the refinement loop for a single user interaction. The
// session is the sole writer of its preferences; methods are safe for
// serialized use from multiple goroutines but passes never run concurrently.
type Session struct {
	id        uuid.UUID
	retriever retrieval.Retriever
	opts      Options

	mu            sync.Mutex
	prefs         *types.Preferences
	state         State
	passes        int
	lastItinerary *types.Itinerary
	failure       error
}

// New creates a session over the given preferences and retriever.
func New(prefs *types.Preferences, retriever retrieval.Retriever, opts Options) (*Session, error) {
	if prefs == nil {
		return nil, fmt.Errorf("preferences are required")
	}
	if retriever == nil {
		return nil, fmt.Errorf("a retriever is required")
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	if opts.TopK <= 0 {
		opts.TopK = ranking.DefaultTopK
	}
	if len(opts.Categories) == 0 {
		opts.Categories = types.AllCategories
	}
	if prefs.Strategy == "" {
		prefs = prefs.Clone()
		prefs.Strategy = types.StrategyBalanced
	}

	return &Session{
		id:        uuid.New(),
		retriever: retriever,
		opts:      opts,
		prefs:     prefs.Clone(),
		state:     StateInit,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current loop state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Passes returns the number of completed refinement passes.
func (s *Session) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}

// Preferences returns a copy of the current preference set.
func (s *Session) Preferences() *types.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// RunPass executes one retrieve-score-rank-compose cycle and suspends at
// AwaitingFeedback (or Done, if this pass exhausted the cap). It may only be
// called from Init or Integrating.
func (s *Session) RunPass(ctx context.Context) (*types.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit && s.state != StateIntegrating {
		return nil, fmt.Errorf("cannot run a pass from state %q", s.state)
	}

	pass := s.passes + 1

	// Retrieving: all categories in parallel, one retry per category
	s.setState(StateRetrieving, pass, "retrieving candidates", nil)
	candidates, err := s.retrieveAll(ctx)
	if err != nil {
		s.state = StateFailed
		s.failure = err
		s.emit(StateFailed, pass, fmt.Sprintf("retrieval failed: %v", err), nil)
		return nil, fmt.Errorf("pass %d failed: %w", pass, err)
	}

	// Scoring and ranking per category
	s.setState(StateScoring, pass, "scoring candidates", nil)
	ranked := make(map[types.Category][]types.ScoredItem, len(candidates))
	for category, items := range candidates {
		ranked[category] = ranking.RankCandidates(items, s.prefs, s.opts.TopK)
	}

	// Attractions optionally trimmed to the total trip budget
	if s.prefs.TripBudget > 0 {
		ranked[types.CategoryAttraction] = itinerary.SelectWithinBudget(
			ranked[types.CategoryAttraction], s.prefs.TripBudget)
	}

	composed := itinerary.ComposeByCategory(ranked)
	s.passes = pass
	s.lastItinerary = composed
	s.setState(StateComposed, pass, "itinerary composed", composed)

	s.recordPassHistory(composed)

	if s.passes >= s.opts.MaxPasses {
		// Pass cap reached: terminate with the last-composed itinerary
		s.setState(StateDone, pass, "pass cap reached", nil)
		return composed, nil
	}

	s.setState(StateAwaitingFeedback, pass, "awaiting feedback", nil)
	return composed, nil
}

// SubmitFeedback integrates user feedback and readies the session for the
// next pass. An accept signal (or empty feedback) finishes the session.
func (s *Session) SubmitFeedback(fb types.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingFeedback {
		return fmt.Errorf("cannot submit feedback in state %q", s.state)
	}

	if fb.Accept || fb.IsEmpty() {
		s.setState(StateDone, s.passes, "itinerary accepted", nil)
		return nil
	}

	s.setState(StateIntegrating, s.passes, "integrating feedback", nil)
	if s.opts.History != nil {
		s.opts.History.AddUser(describeFeedback(fb))
	}

	updated := feedback.Integrate(s.prefs, fb)
	updated.Strategy = feedback.SelectStrategy(updated.Strategy, fb, s.lastItinerary, updated.Budget)
	s.prefs = updated

	return nil
}

// Accept finishes the session with the current itinerary. It is valid from
// any non-terminal state; callers use it to implement feedback timeouts.
func (s *Session) Accept() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDone || s.state == StateFailed {
		return
	}
	s.setState(StateDone, s.passes, "itinerary accepted", nil)
}

// Result reports the session outcome. Safe to call in any state; before the
// first composed pass the itinerary is empty.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.lastItinerary
	if it == nil {
		it = &types.Itinerary{}
	}

	r := Result{
		SessionID: s.id,
		State:     s.state,
		Passes:    s.passes,
		Itinerary: it,
		Failed:    s.state == StateFailed,
	}
	if s.failure != nil {
		r.FailureReason = s.failure.Error()
	}
	return r
}

// Run drives the full refinement loop, pulling feedback from the provider
// after every pass until acceptance, failure, or the pass cap.
func (s *Session) Run(ctx context.Context, provider FeedbackProvider) (Result, error) {
	for {
		it, err := s.RunPass(ctx)
		if err != nil {
			return s.Result(), err
		}
		if s.State() != StateAwaitingFeedback {
			return s.Result(), nil
		}

		fb, err := s.awaitFeedback(ctx, provider, it)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				// Feedback timeout counts as acceptance
				s.Accept()
				return s.Result(), nil
			}
			s.Accept()
			return s.Result(), fmt.Errorf("failed to collect feedback: %w", err)
		}

		if err := s.SubmitFeedback(fb); err != nil {
			return s.Result(), err
		}
		if s.State() == StateDone {
			return s.Result(), nil
		}
	}
}

// awaitFeedback collects one feedback value, applying the configured timeout.
func (s *Session) awaitFeedback(ctx context.Context, provider FeedbackProvider, it *types.Itinerary) (types.Feedback, error) {
	if s.opts.FeedbackTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FeedbackTimeout)
		defer cancel()
	}
	return provider.NextFeedback(ctx, it)
}

// retrieveAll fetches candidates for every configured category in parallel.
// A RetrievalError is retried once; a MissingPreferenceError is not, since
// only new input can fix it. Caller must hold the lock.
func (s *Session) retrieveAll(ctx context.Context) (map[types.Category][]types.CandidateItem, error) {
	results := make([][]types.CandidateItem, len(s.opts.Categories))
	prefs := s.prefs.Clone()

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range s.opts.Categories {
		g.Go(func() error {
			items, err := s.retrieveWithRetry(gctx, category, prefs)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[types.Category][]types.CandidateItem, len(s.opts.Categories))
	for i, category := range s.opts.Categories {
		if len(results[i]) == 0 {
			// Empty category is a warning, not a failure
			s.emit(StateRetrieving, s.passes+1,
				fmt.Sprintf("no candidates for category %s", category), nil)
		}
		out[category] = results[i]
	}
	return out, nil
}

func (s *Session) retrieveWithRetry(ctx context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error) {
	items, err := s.retriever.Retrieve(ctx, category, prefs)
	if err == nil {
		return items, nil
	}

	// Missing input cannot be fixed by retrying
	var missing *retrieval.MissingPreferenceError
	if errors.As(err, &missing) {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, err
	}

	items, retryErr := s.retriever.Retrieve(ctx, category, prefs)
	if retryErr != nil {
		return nil, fmt.Errorf("category %s failed after retry: %w", category, retryErr)
	}
	return items, nil
}

// recordPassHistory appends a compact pass digest to the transcript.
// Caller must hold the lock.
func (s *Session) recordPassHistory(it *types.Itinerary) {
	if s.opts.History == nil {
		return
	}
	s.opts.History.AddAgent(fmt.Sprintf("pass %d: proposed %d flights, %d hotels, %d attractions",
		s.passes, len(it.Flights), len(it.Hotels), len(it.Attractions)))
}

// setState transitions the state and emits a progress event. Caller must
// hold the lock.
func (s *Session) setState(state State, pass int, message string, content any) {
	s.state = state
	s.emit(state, pass, message, content)
}

func (s *Session) emit(state State, pass int, message string, content any) {
	if s.opts.OnProgress == nil {
		return
	}
	s.opts.OnProgress(ProgressEvent{
		SessionID: s.id,
		Pass:      pass,
		State:     state,
		Message:   message,
		Content:   content,
	})
}

// describeFeedback renders feedback for the history transcript.
func describeFeedback(fb types.Feedback) string {
	return fmt.Sprintf("liked [%s], disliked [%s]",
		strings.Join(fb.Liked, ", "), strings.Join(fb.Disliked, ", "))
}
