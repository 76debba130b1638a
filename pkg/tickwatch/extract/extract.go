// Package extract assembles one ticker's fixed-schema record from the
// scraped quote page and the Yahoo market-data enrichment.
package extract

import (
	"context"
	"fmt"

	"tickwatch/pkg/tickwatch/market"
	"tickwatch/pkg/tickwatch/scrape"
	"tickwatch/pkg/tickwatch/types"
)

// SnapshotFetcher yields the parsed quote page for a symbol.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, sym string) (scrape.Snapshot, error)
}

// Enricher supplies the balance-sheet and price-history fields.
type Enricher interface {
	Change5Y(ctx context.Context, sym string) market.FieldResult
	FetchBalanceSheet(ctx context.Context, sym string) market.BalanceSheet
}

// Extractor maps a symbol to a complete record. The quote page is the
// primary source: its failure aborts the record. Enrichment failures only
// degrade their own field to the sentinel.
type Extractor struct {
	snapshots SnapshotFetcher
	market    Enricher
}

// New returns an Extractor over the given sources.
func New(snapshots SnapshotFetcher, enricher Enricher) *Extractor {
	return &Extractor{snapshots: snapshots, market: enricher}
}

// Extract builds the record for sym. On success every schema field carries
// either a real value or types.NA; on error no record is returned.
func (e *Extractor) Extract(ctx context.Context, sym string) (types.Record, error) {
	snap, err := e.snapshots.Fetch(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", sym, err)
	}

	rec := types.NewRecord(sym)
	rec.Set("Company", snap.Company)
	rec.Set("Sector", snap.Sector)
	rec.Set("Price", snap.Price)
	for field, label := range types.SnapshotLabels {
		rec.Set(field, snap.Labels[label])
	}

	bs := e.market.FetchBalanceSheet(ctx, sym)
	rec.Set("Total Assets", bs.TotalAssets.Or(types.NA))
	rec.Set("Total Liabilities", bs.TotalLiabilities.Or(types.NA))
	rec.Set("Change 5Y", e.market.Change5Y(ctx, sym).Or(types.NA))

	return rec, nil
}
