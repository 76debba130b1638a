// Package scrape fetches and parses the Finviz quote page for one symbol.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL   = "https://finviz.com/quote.ashx"
	defaultUserAgent = "Mozilla/5.0"
)

// Snapshot is everything one quote page yields: the label/value pairs of
// the snapshot table plus the three structurally-located fragments. Missing
// fragments are empty strings; the extractor applies the N/A sentinel.
type Snapshot struct {
	Labels  map[string]string
	Company string
	Sector  string
	Price   string
}

// Client fetches quote pages over HTTP.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the quote endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent overrides the request User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client with the given request timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch retrieves and parses the quote page for sym. A transport failure or
// non-2xx status is a hard error: the caller gets no partial snapshot.
func (c *Client) Fetch(ctx context.Context, sym string) (Snapshot, error) {
	url := fmt.Sprintf("%s?t=%s&p=d", c.baseURL, sym)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build request for %s: %w", sym, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch quote page for %s: %w", sym, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Snapshot{}, fmt.Errorf("fetch quote page for %s: status %s", sym, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse quote page for %s: %w", sym, err)
	}
	return Parse(doc), nil
}

// Parse extracts the snapshot table and the three page fragments from a
// parsed quote document.
func Parse(doc *goquery.Document) Snapshot {
	snap := Snapshot{Labels: map[string]string{}}

	// The snapshot table is label/value pairs in consecutive cells. With an
	// odd cell count the trailing label has no value cell.
	cells := doc.Find("table.snapshot-table2 td")
	for i := 0; i < cells.Length(); i += 2 {
		label := strings.TrimSpace(cells.Eq(i).Text())
		if label == "" {
			continue
		}
		value := ""
		if i+1 < cells.Length() {
			value = strings.TrimSpace(cells.Eq(i + 1).Text())
		}
		snap.Labels[label] = value
	}

	snap.Company = strings.TrimSpace(doc.Find("h2.quote-header_ticker-wrapper_company").First().Text())
	// Sector is the first link of the breadcrumb container, which Finviz
	// marks only by its utility-class string.
	snap.Sector = strings.TrimSpace(doc.Find(`div[class="flex space-x-0.5 overflow-hidden"] a`).First().Text())
	snap.Price = strings.TrimSpace(doc.Find("strong.quote-price_wrapper_price").First().Text())

	return snap
}
