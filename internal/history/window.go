// Package history keeps a compact transcript of refinement passes for use as
// LLM prompt context. Recent passes are kept verbatim while older ones are
// compressed into a rule-based summary under an estimated token budget.
package history

import (
	"fmt"
	"strings"
	"sync"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	// RoleUser marks entries describing what the user asked for or how they
	// reacted to an itinerary.
	RoleUser Role = "user"
	// RoleAgent marks entries describing what the planner produced.
	RoleAgent Role = "agent"
	// RoleSummary marks a compressed digest of older entries.
	RoleSummary Role = "summary"
)

// Entry is one transcript line.
type Entry struct {
	Role    Role
	Content string
}

const (
	// DefaultMaxTokens bounds the estimated token size of the transcript.
	DefaultMaxTokens = 4000
	// DefaultRecentEntries is how many trailing entries survive compression
	// verbatim.
	DefaultRecentEntries = 10
	// charsPerToken is a rough estimate for English text. A real tokenizer
	// is overkill for a prompt-budget heuristic.
	charsPerToken = 4
)

// Window is a sliding transcript with decay. Adding an entry that would push
// the estimated token count past the budget compresses the oldest entries
// into a single summary entry, preserving the most recent ones intact.
type Window struct {
	mu            sync.Mutex
	maxTokens     int
	recentEntries int
	entries       []Entry
	tokenEstimate int
}

// NewWindow creates a window with the given token budget and verbatim tail
// size. Non-positive arguments fall back to the defaults.
func NewWindow(maxTokens, recentEntries int) *Window {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if recentEntries <= 0 {
		recentEntries = DefaultRecentEntries
	}
	return &Window{maxTokens: maxTokens, recentEntries: recentEntries}
}

// AddUser appends a user entry, compressing older entries first if the token
// budget would be exceeded.
func (w *Window) AddUser(content string) {
	w.add(Entry{Role: RoleUser, Content: content})
}

// AddAgent appends an agent entry, compressing older entries first if the
// token budget would be exceeded.
func (w *Window) AddAgent(content string) {
	w.add(Entry{Role: RoleAgent, Content: content})
}

func (w *Window) add(entry Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tokens := estimateTokens(entry.Content)
	if w.tokenEstimate+tokens > w.maxTokens {
		w.compress()
	}

	w.entries = append(w.entries, entry)
	w.tokenEstimate += tokens
}

// Entries returns a copy of the current transcript.
func (w *Window) Entries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Entry(nil), w.entries...)
}

// TokenEstimate returns the current estimated token count.
func (w *Window) TokenEstimate() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tokenEstimate
}

// Render formats the transcript for inclusion in a prompt.
func (w *Window) Render() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.entries) == 0 {
		return "(no earlier passes)"
	}

	var sb strings.Builder
	for _, e := range w.entries {
		switch e.Role {
		case RoleSummary:
			sb.WriteString(e.Content)
		case RoleUser:
			sb.WriteString("User: " + e.Content)
		case RoleAgent:
			sb.WriteString("Planner: " + e.Content)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// compress replaces everything but the most recent entries with a summary
// entry. Caller must hold the lock.
func (w *Window) compress() {
	if len(w.entries) <= w.recentEntries {
		return
	}

	preserveStart := len(w.entries) - w.recentEntries
	toSummarize := w.entries[:preserveStart]
	toKeep := w.entries[preserveStart:]

	summary := summarize(toSummarize)

	oldTokens := 0
	for _, e := range toSummarize {
		oldTokens += estimateTokens(e.Content)
	}

	w.tokenEstimate = w.tokenEstimate - oldTokens + estimateTokens(summary)
	w.entries = append([]Entry{{Role: RoleSummary, Content: summary}}, toKeep...)
}

// summarize produces a rule-based digest of older entries: one truncated
// line per entry, prefixed with its author.
func summarize(entries []Entry) string {
	parts := []string{"EARLIER PASSES SUMMARY:"}
	n := 0
	for _, e := range entries {
		content := e.Content
		// Previous summaries are folded in as-is, without their header
		if e.Role == RoleSummary {
			content = strings.TrimPrefix(content, "EARLIER PASSES SUMMARY:\n")
			parts = append(parts, content)
			continue
		}
		n++
		parts = append(parts, fmt.Sprintf("%d. %s: %s", n, e.Role, firstSentence(content)))
	}
	return strings.Join(parts, "\n")
}

// firstSentence truncates long content to its first sentence.
func firstSentence(content string) string {
	if len(content) <= 100 {
		return content
	}
	if idx := strings.Index(content, "."); idx >= 0 && idx < 100 {
		return content[:idx+1] + ".."
	}
	return content[:100] + "..."
}

// estimateTokens estimates the number of tokens in a text string using a
// simple ~4 characters per token heuristic for English text.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(text)/charsPerToken + 1
}
