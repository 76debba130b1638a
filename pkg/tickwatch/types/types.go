// Package types defines the fixed record schema shared by the scraper,
// renderers, and exporter.
package types

// NA is the sentinel for any field whose value could not be determined.
const NA = "N/A"

// Fields is the full column schema in display and export order.
var Fields = []string{
	"Ticker",
	"Company",
	"Sector",
	"Price",
	"Change 5Y",
	"Dividends",
	"Dividend TTM",
	"EPS",
	"EPS Next Y %",
	"EPS Next 5Y %",
	"Revenue",
	"Revenue 5Y growth",
	"Oper. Income",
	"Net Income",
	"ROA",
	"ROE",
	"ROI",
	"P/E",
	"P/S",
	"P/B",
	"Total Assets",
	"Total Liabilities",
}

// SnapshotLabels maps schema fields to the label used in the quote page's
// snapshot table. Fields absent here (Company, Sector, Price, Change 5Y,
// Total Assets, Total Liabilities) are resolved structurally or computed.
var SnapshotLabels = map[string]string{
	"Dividends":         "Dividend Est.",
	"Dividend TTM":      "Dividend TTM",
	"EPS":               "EPS (ttm)",
	"EPS Next Y %":      "EPS next Y",
	"EPS Next 5Y %":     "EPS next 5Y",
	"Revenue":           "Sales",
	"Revenue 5Y growth": "Sales past 5Y",
	"Oper. Income":      "Oper. Margin",
	"Net Income":        "Profit Margin",
	"ROA":               "ROA",
	"ROE":               "ROE",
	"ROI":               "ROI",
	"P/E":               "P/E",
	"P/S":               "P/S",
	"P/B":               "P/B",
}

// Record holds one ticker's values keyed by field name. A record produced
// by the extractor always carries every schema field, each either a real
// value or NA. Records are replaced on refresh, never mutated in place.
type Record map[string]string

// NewRecord returns a record with every schema field set to NA and the
// Ticker field set to sym.
func NewRecord(sym string) Record {
	r := make(Record, len(Fields))
	for _, f := range Fields {
		r[f] = NA
	}
	if sym != "" {
		r["Ticker"] = sym
	}
	return r
}

// Get returns the value for field, or NA if the field is not set. Consumers
// index by field name without existence checks; this keeps that safe even
// for hand-built records.
func (r Record) Get(field string) string {
	if v, ok := r[field]; ok && v != "" {
		return v
	}
	return NA
}

// Set assigns value to field, substituting NA for an empty value.
func (r Record) Set(field, value string) {
	if value == "" {
		value = NA
	}
	r[field] = value
}

// Ticker returns the record's symbol.
func (r Record) Ticker() string { return r.Get("Ticker") }
