package amazon

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the marketplace every deployment so far runs against.
const DefaultBaseURL = "https://www.amazon.es"

// browserHeaders imitate a current desktop Chrome; search pages answer
// differently to obvious bot user agents.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "es-ES,es;q=0.9,en;q=0.8",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Cache-Control":             "max-age=0",
}

// Client fetches search pages with retries and a human-ish pacing delay.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeaders(browserHeaders).
		SetHeader("Referer", baseURL+"/").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(5 * time.Second).
		SetRetryMaxWaitTime(20 * time.Second)

	return &Client{http: http, logger: logger}
}

// SearchPage fetches the HTML of one search results page. The query is the
// category's opaque path fragment (for example "/s?k=chupetes+bebe").
func (c *Client) SearchPage(ctx context.Context, query string) (string, error) {
	// Spread requests out so back-to-back category fetches do not look
	// like a burst.
	select {
	case <-time.After(time.Duration(2000+rand.Intn(2000)) * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(query)
	if err != nil {
		return "", fmt.Errorf("fetch search page: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch search page: status %d", res.StatusCode())
	}
	return res.String(), nil
}
