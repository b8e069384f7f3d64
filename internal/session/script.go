package session

import (
	"context"

	"github.com/jonathan/travel-planner/internal/types"
)

// ScriptProvider replays a fixed sequence of feedback values, one per pass.
// When the script runs out it accepts the current itinerary. It backs the
// CLI's non-interactive plan command and doubles as a test double.
type ScriptProvider struct {
	script []types.Feedback
	next   int
}

// NewScriptProvider creates a provider over the given feedback sequence.
func NewScriptProvider(script []types.Feedback) *ScriptProvider {
	return &ScriptProvider{script: script}
}

// NextFeedback returns the next scripted feedback value, or an accept signal
// once the script is exhausted.
func (p *ScriptProvider) NextFeedback(ctx context.Context, _ *types.Itinerary) (types.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return types.Feedback{}, err
	}
	if p.next >= len(p.script) {
		return types.Feedback{Accept: true}, nil
	}
	fb := p.script[p.next]
	p.next++
	return fb, nil
}
