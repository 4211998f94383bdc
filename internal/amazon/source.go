package amazon

import (
	"context"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// Source adapts the search client and extractor to the selector's
// candidate interface.
type Source struct {
	client       *Client
	baseURL      string
	affiliateTag string
}

func NewSource(client *Client, baseURL, affiliateTag string) *Source {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{client: client, baseURL: baseURL, affiliateTag: affiliateTag}
}

// Candidates fetches and extracts the category's search results.
func (s *Source) Candidates(ctx context.Context, cat catalog.Category) ([]deal.Product, error) {
	html, err := s.client.SearchPage(ctx, cat.Query)
	if err != nil {
		return nil, err
	}
	return ExtractSearchResults(html, s.baseURL, s.affiliateTag)
}
