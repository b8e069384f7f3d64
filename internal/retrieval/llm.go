package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/travel-planner/internal/history"
	"github.com/jonathan/travel-planner/internal/llm"
	"github.com/jonathan/travel-planner/internal/prompts"
	"github.com/jonathan/travel-planner/internal/types"
)

// DefaultRecallCount is how many candidates the LLM is asked for per category.
const DefaultRecallCount = 10

// LLMRetriever recalls candidates from a generative model instead of a fixed
// catalog. Session context from earlier passes is included in the prompt via
// the history window so the model does not re-suggest rejected items.
type LLMRetriever struct {
	client  llm.Client
	count   int
	history *history.Window
}

// NewLLMRetriever creates an LLM-backed retriever. The history window is
// optional; without one the prompt carries no session context.
func NewLLMRetriever(client llm.Client, count int, hist *history.Window) *LLMRetriever {
	if count <= 0 {
		count = DefaultRecallCount
	}
	return &LLMRetriever{client: client, count: count, history: hist}
}

// recallResponse is the document shape the model is instructed to return.
type recallResponse struct {
	Items []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Price    float64  `json:"price"`
		Tags     []string `json:"tags"`
		Location string   `json:"location"`
	} `json:"items"`
}

// Retrieve asks the model for candidates in the given category.
func (r *LLMRetriever) Retrieve(ctx context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error) {
	if err := requirePreferences(prefs); err != nil {
		return nil, err
	}
	if !types.ValidCategory(category) {
		return nil, &RetrievalError{Message: fmt.Sprintf("unknown category %q", category)}
	}

	prompt, err := r.buildPrompt(category, prefs)
	if err != nil {
		return nil, &RetrievalError{Message: "failed to build recall prompt", Cause: err}
	}

	raw, err := r.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &RetrievalError{Message: "recall generation failed", Cause: err}
	}

	var parsed recallResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &RetrievalError{Message: "failed to parse recall response", Cause: err}
	}

	items := make([]types.CandidateItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		// Items without an id cannot be referenced by feedback; drop them
		if it.ID == "" {
			continue
		}
		// The model is told never to suggest avoided items, but enforce it
		if prefs.IsAvoided(it.ID) {
			continue
		}
		items = append(items, types.CandidateItem{
			ID:       it.ID,
			Name:     it.Name,
			Category: category,
			Price:    it.Price,
			Tags:     it.Tags,
			Location: it.Location,
		})
		if len(items) >= r.count {
			break
		}
	}
	return items, nil
}

func (r *LLMRetriever) buildPrompt(category types.Category, prefs *types.Preferences) (string, error) {
	template, err := prompts.Get("recall.json", "recall_candidates")
	if err != nil {
		return "", err
	}

	historyContext := "(no earlier passes)"
	if r.history != nil {
		historyContext = r.history.Render()
	}

	budget := "none"
	if prefs.Budget > 0 {
		budget = strconv.FormatFloat(prefs.Budget, 'f', -1, 64)
	}

	return prompts.Format(template, map[string]string{
		"Count":       strconv.Itoa(r.count),
		"Category":    string(category),
		"Destination": prefs.Destination,
		"Interests":   joinOrNone(prefs.Interests),
		"Budget":      budget,
		"Favorites":   joinOrNone(prefs.Favorites),
		"Avoid":       joinOrNone(prefs.Avoid),
		"History":     historyContext,
	}), nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
