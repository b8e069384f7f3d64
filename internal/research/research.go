// Package research discovers candidate listing pages for a destination using
// Google Custom Search. It feeds the HTML source retriever with per-category
// listing URLs when no curated catalog is available.
package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/travel-planner/internal/types"
)

// Researcher handles external destination research
type Researcher struct {
	svc *customsearch.Service
	cx  string
}

// NewResearcher creates a new Researcher instance
func NewResearcher(ctx context.Context, apiKey string, cx string) (*Researcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Researcher{
		svc: svc,
		cx:  cx,
	}, nil
}

// categoryQuery builds the search query used to find a listing page for one
// candidate category.
func categoryQuery(destination string, category types.Category) string {
	switch category {
	case types.CategoryFlight:
		return fmt.Sprintf("flights to %s deals listing", destination)
	case types.CategoryHotel:
		return fmt.Sprintf("%s hotels booking listing", destination)
	default:
		return fmt.Sprintf("%s attractions things to do", destination)
	}
}

// DiscoverListingSources finds one listing page URL per candidate category.
// Categories whose searches fail or return nothing are left out of the map;
// an empty map is an error since the retriever would have nothing to parse.
func (r *Researcher) DiscoverListingSources(ctx context.Context, destination string) (map[types.Category]string, error) {
	if destination == "" {
		return nil, fmt.Errorf("a destination is required")
	}

	sources := make(map[types.Category]string, len(types.AllCategories))
	for _, category := range types.AllCategories {
		resp, err := r.svc.Cse.List().Context(ctx).Cx(r.cx).Q(categoryQuery(destination, category)).Num(1).Do()
		if err != nil {
			// Skip failed queries gracefully
			continue
		}
		if len(resp.Items) > 0 {
			sources[category] = resp.Items[0].Link
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no listing sources found for %s", destination)
	}
	return sources, nil
}

// FindGuideSeeds discovers general guide pages for a destination. The links
// are transcript seeds for LLM recall, not retrieval sources.
func (r *Researcher) FindGuideSeeds(ctx context.Context, destination string) ([]string, error) {
	queries := []string{
		fmt.Sprintf("%s travel guide", destination),
		fmt.Sprintf("%s itinerary tips", destination),
	}

	var seeds []string
	for _, q := range queries {
		resp, err := r.svc.Cse.List().Context(ctx).Cx(r.cx).Q(q).Num(3).Do()
		if err != nil {
			continue
		}
		for _, item := range resp.Items {
			seeds = append(seeds, item.Link)
		}
	}

	return dedupLinks(seeds), nil
}

// GuideSeedNote renders guide links as a transcript entry for the recall
// prompt. Returns an empty string when there are no seeds.
func GuideSeedNote(seeds []string) string {
	if len(seeds) == 0 {
		return ""
	}
	return "Destination guides worth consulting: " + strings.Join(seeds, ", ")
}

// dedupLinks removes duplicate URLs, preserving first-seen order.
func dedupLinks(links []string) []string {
	unique := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if !seen[link] {
			unique = append(unique, link)
			seen[link] = true
		}
	}
	return unique
}
