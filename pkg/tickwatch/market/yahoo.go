package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultChartURL      = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultTimeseriesURL = "https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries"
	defaultUserAgent     = "Mozilla/5.0"
	totalAssetsType      = "annualTotalAssets"
	totalLiabilitiesType = "annualTotalLiabilitiesNetMinorityInterest"
)

// Client queries the Yahoo Finance chart and fundamentals-timeseries
// endpoints.
type Client struct {
	http          *http.Client
	chartURL      string
	timeseriesURL string
	userAgent     string
}

// Option configures a Client.
type Option func(*Client)

// WithChartURL overrides the chart endpoint, mainly for tests.
func WithChartURL(u string) Option {
	return func(c *Client) { c.chartURL = u }
}

// WithTimeseriesURL overrides the fundamentals endpoint, mainly for tests.
func WithTimeseriesURL(u string) Option {
	return func(c *Client) { c.timeseriesURL = u }
}

// NewClient returns a Client with the given request timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{Timeout: timeout},
		chartURL:      defaultChartURL,
		timeseriesURL: defaultTimeseriesURL,
		userAgent:     defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// chartResponse models the v8 chart payload; only the close series is
// consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Change5Y fetches five years of daily closes and returns the percent
// change between the first and last close, formatted with two decimals and
// a trailing percent sign. Any failure, an empty series, or a zero first
// close resolves to a failed result; it never aborts the caller's record.
func (c *Client) Change5Y(ctx context.Context, sym string) FieldResult {
	url := fmt.Sprintf("%s/%s?range=5y&interval=1d", c.chartURL, sym)
	var out chartResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return failure(err)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return failure(fmt.Errorf("no chart data for %s", sym))
	}
	closes := out.Chart.Result[0].Indicators.Quote[0].Close
	if len(closes) == 0 {
		return failure(fmt.Errorf("empty price history for %s", sym))
	}
	first, last := closes[0], closes[len(closes)-1]
	if first == 0 {
		return failure(fmt.Errorf("zero starting close for %s", sym))
	}
	pct := (last - first) / first * 100
	return value(fmt.Sprintf("%.2f%%", pct))
}

// BalanceSheet holds the two consumed line items, each with its own
// outcome.
type BalanceSheet struct {
	TotalAssets      FieldResult
	TotalLiabilities FieldResult
}

// timeseriesResponse models the fundamentals-timeseries payload. Each
// result carries one line item keyed by its type name; periods are ordered
// oldest first, so the most recent value is the last non-nil point.
type timeseriesResponse struct {
	Timeseries struct {
		Result []timeseriesResult `json:"result"`
		Error  any                `json:"error"`
	} `json:"timeseries"`
}

type timeseriesResult struct {
	Meta struct {
		Type []string `json:"type"`
	} `json:"meta"`
	TotalAssets      []*timeseriesPoint `json:"annualTotalAssets"`
	TotalLiabilities []*timeseriesPoint `json:"annualTotalLiabilitiesNetMinorityInterest"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	} `json:"reportedValue"`
}

// FetchBalanceSheet queries the annual total-assets and total-liabilities
// series for sym. Each line item degrades independently: a missing row or
// an upstream error fails only that field.
func (c *Client) FetchBalanceSheet(ctx context.Context, sym string) BalanceSheet {
	url := fmt.Sprintf("%s/%s?symbol=%s&type=%s,%s&period1=%d&period2=%d",
		c.timeseriesURL, sym, sym, totalAssetsType, totalLiabilitiesType,
		time.Now().AddDate(-5, 0, 0).Unix(), time.Now().Unix())
	var out timeseriesResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return BalanceSheet{TotalAssets: failure(err), TotalLiabilities: failure(err)}
	}

	bs := BalanceSheet{
		TotalAssets:      failure(fmt.Errorf("no %s row for %s", totalAssetsType, sym)),
		TotalLiabilities: failure(fmt.Errorf("no %s row for %s", totalLiabilitiesType, sym)),
	}
	for _, res := range out.Timeseries.Result {
		if len(res.TotalAssets) > 0 {
			bs.TotalAssets = latestPoint(res.TotalAssets, sym)
		}
		if len(res.TotalLiabilities) > 0 {
			bs.TotalLiabilities = latestPoint(res.TotalLiabilities, sym)
		}
	}
	return bs
}

// latestPoint picks the most recent reported value of a line item and
// formats it with thousands separators; a point without a raw number falls
// back to Yahoo's own formatted string.
func latestPoint(points []*timeseriesPoint, sym string) FieldResult {
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if p == nil {
			continue
		}
		if p.ReportedValue.Raw != nil {
			return value(Comma(*p.ReportedValue.Raw))
		}
		if p.ReportedValue.Fmt != "" {
			return value(p.ReportedValue.Fmt)
		}
	}
	return failure(fmt.Errorf("no reported value for %s", sym))
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
