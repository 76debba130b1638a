package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chartServer(t *testing.T, closes []float64) *httptest.Server {
	t.Helper()
	body := `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{"close":[`
	for i, c := range closes {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf("%g", c)
	}
	body += `]}]}}],"error":null}}`
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestChange5Y(t *testing.T) {
	srv := chartServer(t, []float64{100, 120, 90, 150})
	defer srv.Close()

	c := NewClient(time.Second, WithChartURL(srv.URL))
	res := c.Change5Y(context.Background(), "AAPL")
	require.True(t, res.Ok())
	require.Equal(t, "50.00%", res.Value)
}

func TestChange5YNegative(t *testing.T) {
	srv := chartServer(t, []float64{200, 150})
	defer srv.Close()

	c := NewClient(time.Second, WithChartURL(srv.URL))
	res := c.Change5Y(context.Background(), "AAPL")
	require.Equal(t, "-25.00%", res.Value)
}

func TestChange5YEmptyHistory(t *testing.T) {
	srv := chartServer(t, nil)
	defer srv.Close()

	c := NewClient(time.Second, WithChartURL(srv.URL))
	res := c.Change5Y(context.Background(), "AAPL")
	require.False(t, res.Ok())
	require.Equal(t, "N/A", res.Or("N/A"))
}

func TestChange5YUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithChartURL(srv.URL))
	res := c.Change5Y(context.Background(), "AAPL")
	require.False(t, res.Ok())
	require.Error(t, res.Err)
}

const balanceSheetBody = `{"timeseries":{"result":[
  {"meta":{"type":["annualTotalAssets"]},
   "annualTotalAssets":[
     {"asOfDate":"2021-09-30","reportedValue":{"raw":1000000,"fmt":"1M"}},
     {"asOfDate":"2022-09-30","reportedValue":{"raw":1234567,"fmt":"1.23M"}}]},
  {"meta":{"type":["annualTotalLiabilitiesNetMinorityInterest"]},
   "annualTotalLiabilitiesNetMinorityInterest":[
     {"asOfDate":"2022-09-30","reportedValue":{"raw":987654.5,"fmt":"987.65k"}}]}
],"error":null}}`

func TestFetchBalanceSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(balanceSheetBody))
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithTimeseriesURL(srv.URL))
	bs := c.FetchBalanceSheet(context.Background(), "AAPL")
	// Most recent period wins, comma-grouped.
	require.Equal(t, "1,234,567", bs.TotalAssets.Or("N/A"))
	require.Equal(t, "987,654.50", bs.TotalLiabilities.Or("N/A"))
}

func TestFetchBalanceSheetMissingRow(t *testing.T) {
	body := `{"timeseries":{"result":[
	  {"meta":{"type":["annualTotalAssets"]},
	   "annualTotalAssets":[{"asOfDate":"2022-09-30","reportedValue":{"raw":5000,"fmt":"5k"}}]}
	],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithTimeseriesURL(srv.URL))
	bs := c.FetchBalanceSheet(context.Background(), "AAPL")
	require.Equal(t, "5,000", bs.TotalAssets.Or("N/A"))
	// The absent row degrades alone.
	require.Equal(t, "N/A", bs.TotalLiabilities.Or("N/A"))
}

func TestFetchBalanceSheetUpstreamErrorDegradesBoth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithTimeseriesURL(srv.URL))
	bs := c.FetchBalanceSheet(context.Background(), "AAPL")
	require.Equal(t, "N/A", bs.TotalAssets.Or("N/A"))
	require.Equal(t, "N/A", bs.TotalLiabilities.Or("N/A"))
}

func TestFieldResultOr(t *testing.T) {
	require.Equal(t, "x", FieldResult{Value: "x"}.Or("N/A"))
	require.Equal(t, "N/A", FieldResult{}.Or("N/A"))
	require.Equal(t, "N/A", FieldResult{Value: "x", Err: fmt.Errorf("boom")}.Or("N/A"))
}

func TestComma(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
		{1234567.89, "1,234,567.89"},
		{-12.5, "-12.50"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Comma(tt.in), "Comma(%v)", tt.in)
	}
}
