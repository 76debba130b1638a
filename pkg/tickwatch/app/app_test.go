package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tickwatch/pkg/tickwatch/export"
	"tickwatch/pkg/tickwatch/filter"
	"tickwatch/pkg/tickwatch/render"
	"tickwatch/pkg/tickwatch/types"
	"tickwatch/pkg/tickwatch/watchlist"
)

// stubSource fails for the symbols in fail, otherwise returns a minimal
// record.
type stubSource struct {
	fail  map[string]bool
	calls []string
}

func (s *stubSource) Extract(ctx context.Context, sym string) (types.Record, error) {
	s.calls = append(s.calls, sym)
	if s.fail[sym] {
		return nil, fmt.Errorf("fetch %s: status 404", sym)
	}
	rec := types.NewRecord(sym)
	rec.Set("Company", sym+" Co.")
	return rec, nil
}

// captureRenderer records what it was asked to render.
type captureRenderer struct {
	records []types.Record
}

func (c *captureRenderer) Render(w io.Writer, records []types.Record, opts render.Options) error {
	c.records = records
	return nil
}

func newTestStore(t *testing.T, syms ...string) *watchlist.Store {
	t.Helper()
	s := watchlist.NewStore(filepath.Join(t.TempDir(), "tickers.txt"))
	for _, sym := range syms {
		_, err := s.Add(sym)
		require.NoError(t, err)
	}
	return s
}

func TestRefreshSkipsFailedTickers(t *testing.T) {
	src := &stubSource{fail: map[string]bool{"BAD": true}}
	sink := &captureRenderer{}
	var errOut bytes.Buffer
	r := &Runner{
		Store:     newTestStore(t, "AAPL", "BAD", "MSFT"),
		Extractor: src,
		Renderer:  sink,
		Out:       io.Discard,
		ErrOut:    &errOut,
	}

	require.NoError(t, r.Refresh(context.Background(), ExecuteOptions{}))

	// Every symbol was attempted, in order; only the failed one is missing.
	require.Equal(t, []string{"AAPL", "BAD", "MSFT"}, src.calls)
	require.Len(t, sink.records, 2)
	require.Equal(t, "AAPL", sink.records[0].Ticker())
	require.Equal(t, "MSFT", sink.records[1].Ticker())
	require.Contains(t, errOut.String(), "error fetching BAD")
}

func TestRefreshAppliesFilter(t *testing.T) {
	src := &stubSource{}
	sink := &captureRenderer{}
	r := &Runner{
		Store:     newTestStore(t, "AAPL", "MSFT", "BRK-B"),
		Extractor: src,
		Renderer:  sink,
		Out:       io.Discard,
	}

	f, err := filter.Parse("BRK*")
	require.NoError(t, err)
	require.NoError(t, r.Refresh(context.Background(), ExecuteOptions{Filter: f}))
	require.Equal(t, []string{"BRK-B"}, src.calls)
}

func TestDetailPropagatesFetchError(t *testing.T) {
	src := &stubSource{fail: map[string]bool{"BAD": true}}
	r := &Runner{
		Store:     newTestStore(t),
		Extractor: src,
		Renderer:  &captureRenderer{},
		Out:       io.Discard,
	}
	err := r.Detail(context.Background(), "bad", ExecuteOptions{})
	require.Error(t, err)
}

func TestDetailNormalizesSymbol(t *testing.T) {
	src := &stubSource{}
	sink := &captureRenderer{}
	r := &Runner{
		Store:     newTestStore(t),
		Extractor: src,
		Renderer:  sink,
		Out:       io.Discard,
	}
	require.NoError(t, r.Detail(context.Background(), " aapl ", ExecuteOptions{}))
	require.Equal(t, []string{"AAPL"}, src.calls)
	require.Len(t, sink.records, 1)
}

func TestExportEmptyWatchlist(t *testing.T) {
	r := &Runner{
		Store:     newTestStore(t),
		Extractor: &stubSource{},
		Renderer:  &captureRenderer{},
		Out:       io.Discard,
	}
	err := r.Export(context.Background(), filepath.Join(t.TempDir(), "out.xlsx"), ExecuteOptions{})
	require.ErrorIs(t, err, export.ErrNoTickers)
}

func TestExportAllExtractionsFailed(t *testing.T) {
	r := &Runner{
		Store:     newTestStore(t, "BAD"),
		Extractor: &stubSource{fail: map[string]bool{"BAD": true}},
		Renderer:  &captureRenderer{},
		Out:       io.Discard,
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := r.Export(context.Background(), path, ExecuteOptions{})
	require.ErrorIs(t, err, export.ErrNoData)
	require.NoFileExists(t, path)
}

func TestExportWritesSurvivors(t *testing.T) {
	r := &Runner{
		Store:     newTestStore(t, "AAPL", "BAD", "MSFT"),
		Extractor: &stubSource{fail: map[string]bool{"BAD": true}},
		Renderer:  &captureRenderer{},
		Out:       io.Discard,
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, r.Export(context.Background(), path, ExecuteOptions{}))
	require.FileExists(t, path)
}

func TestSymsDoesNotFetch(t *testing.T) {
	src := &stubSource{}
	sink := &captureRenderer{}
	r := &Runner{
		Store:     newTestStore(t, "AAPL", "MSFT"),
		Extractor: src,
		Renderer:  sink,
		Out:       io.Discard,
	}
	require.NoError(t, r.Syms(ExecuteOptions{}))
	require.Empty(t, src.calls)
	require.Len(t, sink.records, 2)
}
