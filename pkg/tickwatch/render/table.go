package render

import (
	"context"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tickwatch/pkg/tickwatch/market"
	"tickwatch/pkg/tickwatch/types"
)

// TableRenderer draws one row per record in watch-list order. When Quotes
// is set and opts.Live is on, LIVE and CHG% columns are appended after
// Price, colored by the sign of the day change.
type TableRenderer struct {
	Quotes market.QuoteService
}

// NewTableRenderer returns a TableRenderer without live columns.
func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, records []types.Record, opts Options) error {
	cols := opts.columnsOrAll()
	live := opts.Live && r.Quotes != nil

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	headers := append([]string(nil), cols...)
	if live {
		headers = insertAfter(headers, "Price", "Live", "Chg%")
	}
	hdr := make(table.Row, len(headers))
	for i, c := range headers {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 1, WidthMax: maxWidth})
	}
	tw.SetColumnConfigs(cfgs)

	for _, rec := range records {
		var q market.Quote
		if live {
			q, _ = r.Quotes.Quote(context.Background(), rec.Ticker())
		}
		row := make(table.Row, 0, len(headers))
		for _, c := range headers {
			switch {
			case live && c == "Live":
				row = append(row, colorBySign(q.Price, q.ChgRaw, opts.Color))
			case live && c == "Chg%":
				row = append(row, colorBySign(q.ChgFmt, q.ChgRaw, opts.Color))
			default:
				row = append(row, rec.Get(c))
			}
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}

func colorBySign(val string, chg float64, color bool) string {
	if !color || val == "" {
		return val
	}
	if chg > 0 {
		return text.Colors{text.FgGreen}.Sprint(val)
	}
	if chg < 0 {
		return text.Colors{text.FgRed}.Sprint(val)
	}
	return val
}

// insertAfter places extra columns right after the named column, or at the
// end when it is not displayed.
func insertAfter(cols []string, after string, extra ...string) []string {
	for i, c := range cols {
		if c == after {
			out := make([]string, 0, len(cols)+len(extra))
			out = append(out, cols[:i+1]...)
			out = append(out, extra...)
			out = append(out, cols[i+1:]...)
			return out
		}
	}
	return append(cols, extra...)
}
