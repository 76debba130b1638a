package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
)

// Quote carries the live regular-market values used for the table's
// optional live columns and the detail header.
type Quote struct {
	Price  string
	ChgFmt string
	ChgRaw float64
	Name   string
}

// QuoteService fetches the live quote for a symbol.
type QuoteService interface {
	Quote(ctx context.Context, sym string) (Quote, error)
}

// YahooQuotes implements QuoteService over the yf-go quote summary API.
type YahooQuotes struct {
	client  *yfgo.Client
	timeout time.Duration
}

// NewYahooQuotes returns a YahooQuotes with the given per-request timeout.
func NewYahooQuotes(timeout time.Duration) *YahooQuotes {
	return &YahooQuotes{client: yfgo.NewClient(), timeout: timeout}
}

func (s *YahooQuotes) Quote(ctx context.Context, sym string) (Quote, error) {
	if sym == "" {
		return Quote{}, nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return Quote{}, err
	}
	if res.Price == nil {
		return Quote{}, fmt.Errorf("no price for %s", sym)
	}

	var q Quote
	p := res.Price.RegularMarketPrice
	if p.Fmt != "" {
		q.Price = p.Fmt
	} else if p.Raw != nil {
		q.Price = fmt.Sprintf("%.2f", *p.Raw)
	}
	cp := res.Price.RegularMarketChangePercent
	if cp.Fmt != "" {
		q.ChgFmt = cp.Fmt
	}
	if cp.Raw != nil {
		q.ChgRaw = *cp.Raw
		if q.ChgFmt == "" {
			q.ChgFmt = fmt.Sprintf("%.2f%%", q.ChgRaw)
		}
	}
	if res.Price.ShortName != "" {
		q.Name = res.Price.ShortName
	} else if res.Price.LongName != "" {
		q.Name = res.Price.LongName
	}
	return q, nil
}

// CachedQuotes decorates a QuoteService with a TTL+LRU cache so repeated
// renders within one invocation fetch each symbol once.
type CachedQuotes struct {
	next QuoteService
	ttl  time.Duration
	size int

	mu    sync.Mutex
	items map[string]quoteEntry
	order []string // oldest at index 0
}

type quoteEntry struct {
	at time.Time
	q  Quote
}

// NewCachedQuotes wraps next with a cache of at most size entries, each
// valid for ttl.
func NewCachedQuotes(next QuoteService, ttl time.Duration, size int) *CachedQuotes {
	return &CachedQuotes{next: next, ttl: ttl, size: size, items: map[string]quoteEntry{}}
}

func (c *CachedQuotes) Quote(ctx context.Context, sym string) (Quote, error) {
	if sym == "" {
		return Quote{}, nil
	}
	now := time.Now()
	c.mu.Lock()
	if ent, ok := c.items[sym]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(sym)
			q := ent.q
			c.mu.Unlock()
			return q, nil
		}
		delete(c.items, sym)
		c.dropLocked(sym)
	}
	c.mu.Unlock()

	q, err := c.next.Quote(ctx, sym)
	if err != nil {
		return q, err
	}
	c.mu.Lock()
	c.items[sym] = quoteEntry{at: now, q: q}
	c.order = append(c.order, sym)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return q, nil
}

func (c *CachedQuotes) touchLocked(sym string) {
	for i, v := range c.order {
		if v == sym {
			c.order = append(append(c.order[:i], c.order[i+1:]...), sym)
			return
		}
	}
	c.order = append(c.order, sym)
}

func (c *CachedQuotes) dropLocked(sym string) {
	for i, v := range c.order {
		if v == sym {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
