// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/travel-planner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPreferences outputs a human-readable summary of the current preferences.
func (p *Printer) PrintPreferences(prefs *types.Preferences) {
	if prefs == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Destination: %s\n", prefs.Destination))
	if prefs.Budget > 0 {
		sb.WriteString(fmt.Sprintf("Budget:      %.0f per item\n", prefs.Budget))
	}
	if prefs.TripBudget > 0 {
		sb.WriteString(fmt.Sprintf("Trip budget: %.0f total\n", prefs.TripBudget))
	}
	if prefs.Strategy != "" {
		sb.WriteString(fmt.Sprintf("Strategy:    %s\n", prefs.Strategy))
	}

	if len(prefs.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("Interests:   %s\n", strings.Join(prefs.Interests, ", ")))
	}
	if len(prefs.Favorites) > 0 {
		sb.WriteString(fmt.Sprintf("Favorites:   %s\n", joinCapped(prefs.Favorites, maxItemsToShow)))
	}
	if len(prefs.Avoid) > 0 {
		sb.WriteString(fmt.Sprintf("Avoiding:    %s\n", joinCapped(prefs.Avoid, maxItemsToShow)))
	}

	p.printBox("CURRENT PREFERENCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintItinerary outputs the composed itinerary, one section per category.
func (p *Printer) PrintItinerary(it *types.Itinerary, pass int) {
	if it == nil {
		return
	}

	var sb strings.Builder
	for _, category := range types.AllCategories {
		items := it.CategoryItems(category)
		sb.WriteString(fmt.Sprintf("%s (%d)\n", strings.ToUpper(string(category)), len(items)))

		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := items[i]
			name := item.Name
			if name == "" {
				name = item.ID
			}
			sb.WriteString(fmt.Sprintf("  #%d %s\n", i+1, name))
			sb.WriteString(fmt.Sprintf("     Score: %.2f  Price: %.0f\n", item.Score, item.Price))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox(fmt.Sprintf("ITINERARY (pass %d)", pass), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoredItems outputs the top scored items with their match notes.
func (p *Printer) PrintScoredItems(items []types.ScoredItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total items scored: %d\n\n", len(items)))

	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, item.ID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f\n", item.Score))
		if len(item.MatchedInterests) > 0 {
			interests := strings.Join(item.MatchedInterests, ", ")
			if len(interests) > 40 {
				interests = interests[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Interests: %s\n", interests))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more items", len(items)-maxItemsToShow))
	}

	p.printBox("TOP SCORED ITEMS", sb.String())
}

// PrintResult outputs the terminal session outcome.
func (p *Printer) PrintResult(state string, passes int, failed bool, reason string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State:  %s\n", state))
	sb.WriteString(fmt.Sprintf("Passes: %d\n", passes))
	if failed {
		sb.WriteString(fmt.Sprintf("Failed: %s\n", reason))
	}
	p.printBox("SESSION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// joinCapped joins up to limit values, appending a count of the remainder.
func joinCapped(values []string, limit int) string {
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(values[:limit], ", "), len(values)-limit)
}
