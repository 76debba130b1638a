package types

import "strings"

// Category is a named group of schema fields, used by the detail view and
// as a column set for table rendering.
type Category struct {
	Name   string
	Fields []string
}

// Categories groups the schema into the five detail panels, in display
// order.
var Categories = []Category{
	{Name: "Basic Info", Fields: []string{"Ticker", "Company", "Sector", "Price"}},
	{Name: "Performance", Fields: []string{"Change 5Y", "Revenue 5Y growth", "EPS Next Y %", "EPS Next 5Y %", "Dividends", "Dividend TTM"}},
	{Name: "Profitability", Fields: []string{"Revenue", "Oper. Income", "Net Income", "ROA", "ROE", "ROI"}},
	{Name: "Valuation", Fields: []string{"EPS", "P/E", "P/S", "P/B"}},
	{Name: "Balance Sheet", Fields: []string{"Total Assets", "Total Liabilities"}},
}

// Sets names the column groups accepted by --cols. Each expands into the
// fields of the matching category; "all" expands into the full schema.
var Sets = map[string][]string{
	"all":           Fields,
	"basic":         Categories[0].Fields,
	"performance":   Categories[1].Fields,
	"profitability": Categories[2].Fields,
	"valuation":     Categories[3].Fields,
	"balance":       Categories[4].Fields,
}

// ExpandSets returns the union of columns for the given set names,
// preserving set order and first occurrence of each column.
func ExpandSets(names []string) ([]string, error) {
	out := make([]string, 0, len(Fields))
	seen := map[string]struct{}{}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name}
		}
		for _, c := range cols {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), Fields...), nil
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name string
}

func (e *UnknownSetError) Error() string {
	avail := []string{"all", "basic", "performance", "profitability", "valuation", "balance"}
	return "unknown column set: " + e.Name + "; available: " + strings.Join(avail, ", ")
}
