package render

import (
	"fmt"
	"io"
	"strings"

	"tickwatch/pkg/tickwatch/types"
)

// SymsRenderer prints all symbols as a single comma-separated line.
type SymsRenderer struct{}

func NewSymsRenderer() *SymsRenderer { return &SymsRenderer{} }

func (SymsRenderer) Render(w io.Writer, records []types.Record, _ Options) error {
	syms := make([]string, 0, len(records))
	for _, rec := range records {
		sym := strings.TrimSpace(rec.Ticker())
		if sym == "" || sym == types.NA {
			continue
		}
		syms = append(syms, sym)
	}
	_, err := fmt.Fprintln(w, strings.Join(syms, ","))
	return err
}
