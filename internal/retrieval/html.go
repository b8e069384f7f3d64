package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/travel-planner/internal/types"
)

// defaultHTTPTimeout bounds a single listing page fetch.
const defaultHTTPTimeout = 15 * time.Second

// HTMLSourceRetriever retrieves candidates by scraping listing pages. Each
// category maps to one URL whose markup carries candidates as elements with
// a "candidate" class and data attributes:
//
//	<li class="candidate" data-id="hotel_001" data-price="90"
//	    data-tags="spa,center" data-location="Paris">Hotel du Louvre</li>
type HTMLSourceRetriever struct {
	sources map[types.Category]string
	client  *http.Client
}

// NewHTMLSourceRetriever creates a retriever over per-category listing URLs.
// A nil client gets a default with a request timeout.
func NewHTMLSourceRetriever(sources map[types.Category]string, client *http.Client) *HTMLSourceRetriever {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTMLSourceRetriever{sources: sources, client: client}
}

// Retrieve fetches and parses the listing page configured for the category.
// A category with no configured source yields zero candidates, not an error.
func (r *HTMLSourceRetriever) Retrieve(ctx context.Context, category types.Category, prefs *types.Preferences) ([]types.CandidateItem, error) {
	if err := requirePreferences(prefs); err != nil {
		return nil, err
	}
	if !types.ValidCategory(category) {
		return nil, &RetrievalError{Message: fmt.Sprintf("unknown category %q", category)}
	}

	source, configured := r.sources[category]
	if !configured {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &RetrievalError{Message: fmt.Sprintf("failed to build request for %s", source), Cause: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Message: fmt.Sprintf("failed to fetch %s", source), Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &RetrievalError{Message: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, source)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetrievalError{Message: fmt.Sprintf("failed to read response from %s", source), Cause: err}
	}

	return ParseListing(string(body), category)
}

// ParseListing extracts candidate items from listing page HTML. Elements
// missing an id or a parsable price are skipped rather than failing the
// whole page.
func ParseListing(htmlContent string, category types.Category) ([]types.CandidateItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &RetrievalError{Message: "failed to parse listing HTML", Cause: err}
	}

	var items []types.CandidateItem
	doc.Find(".candidate").Each(func(_ int, s *goquery.Selection) {
		id, exists := s.Attr("data-id")
		if !exists || id == "" {
			return
		}

		priceAttr, exists := s.Attr("data-price")
		if !exists {
			return
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceAttr), 64)
		if err != nil || price < 0 {
			return
		}

		item := types.CandidateItem{
			ID:       id,
			Name:     strings.TrimSpace(s.Text()),
			Category: category,
			Price:    price,
			Location: strings.TrimSpace(s.AttrOr("data-location", "")),
		}
		if tags := strings.TrimSpace(s.AttrOr("data-tags", "")); tags != "" {
			for _, tag := range strings.Split(tags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					item.Tags = append(item.Tags, tag)
				}
			}
		}
		items = append(items, item)
	})

	return items, nil
}
