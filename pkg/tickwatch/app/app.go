// Package app wires the watchlist store, record extractor, renderers, and
// exporter behind the CLI commands.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tickwatch/pkg/tickwatch/export"
	"tickwatch/pkg/tickwatch/filter"
	"tickwatch/pkg/tickwatch/render"
	"tickwatch/pkg/tickwatch/types"
	"tickwatch/pkg/tickwatch/watchlist"
)

// RecordSource maps a symbol to a record.
type RecordSource interface {
	Extract(ctx context.Context, sym string) (types.Record, error)
}

// Runner executes the user-facing operations over the shared pieces.
type Runner struct {
	Store     *watchlist.Store
	Extractor RecordSource
	Renderer  render.Renderer
	Out       io.Writer
	ErrOut    io.Writer
	Log       *slog.Logger
}

// ExecuteOptions carry rendering options plus the symbol filter.
type ExecuteOptions struct {
	render.Options
	Filter filter.Filter
}

// Refresh extracts every watch-list symbol and renders the result. Each
// symbol is independent: a failed extraction is reported and skipped, the
// rest of the batch continues.
func (r *Runner) Refresh(ctx context.Context, opts ExecuteOptions) error {
	records := r.collect(ctx, r.symbols(opts.Filter))
	return r.Renderer.Render(r.Out, records, opts.Options)
}

// Detail extracts one symbol and renders it. The extraction error
// propagates: with no record there is nothing to show.
func (r *Runner) Detail(ctx context.Context, sym string, opts ExecuteOptions) error {
	rec, err := r.Extractor.Extract(ctx, watchlist.Normalize(sym))
	if err != nil {
		return err
	}
	return r.Renderer.Render(r.Out, []types.Record{rec}, opts.Options)
}

// Syms renders the watch-list symbols without fetching anything.
func (r *Runner) Syms(opts ExecuteOptions) error {
	syms := r.symbols(opts.Filter)
	records := make([]types.Record, 0, len(syms))
	for _, sym := range syms {
		records = append(records, types.NewRecord(sym))
	}
	return r.Renderer.Render(r.Out, records, opts.Options)
}

// Export re-extracts every watch-list symbol for freshness, drops failed
// ones, and writes the workbook only when at least one record survived.
// export.ErrNoTickers and export.ErrNoData name the two no-file outcomes.
func (r *Runner) Export(ctx context.Context, path string, opts ExecuteOptions) error {
	syms := r.symbols(opts.Filter)
	if len(syms) == 0 {
		return export.ErrNoTickers
	}
	records := r.collect(ctx, syms)
	if len(records) == 0 {
		return export.ErrNoData
	}
	if err := export.WriteWorkbook(path, records); err != nil {
		return err
	}
	r.log().Info("exported records", "path", path, "count", len(records))
	return nil
}

// symbols returns the watch-list symbols passing the filter, in insertion
// order.
func (r *Runner) symbols(f filter.Filter) []string {
	syms := r.Store.Symbols()
	if f == nil {
		return syms
	}
	out := make([]string, 0, len(syms))
	for _, sym := range syms {
		if f.Match(sym) {
			out = append(out, sym)
		}
	}
	return out
}

// collect extracts records best-effort, preserving symbol order and
// reporting failures per ticker without aborting the batch.
func (r *Runner) collect(ctx context.Context, syms []string) []types.Record {
	records := make([]types.Record, 0, len(syms))
	for _, sym := range syms {
		rec, err := r.Extractor.Extract(ctx, sym)
		if err != nil {
			r.log().Warn("skipping ticker", "sym", sym, "err", err)
			if r.ErrOut != nil {
				fmt.Fprintf(r.ErrOut, "error fetching %s: %v\n", sym, err)
			}
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
