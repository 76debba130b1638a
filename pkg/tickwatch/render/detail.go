package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"tickwatch/pkg/tickwatch/types"
)

// DetailRenderer draws one record as the five category panels, each field
// on its own "Name: value" line. It renders the first record only; an
// empty input is the no-selection state.
type DetailRenderer struct{}

func NewDetailRenderer() *DetailRenderer { return &DetailRenderer{} }

func (DetailRenderer) Render(w io.Writer, records []types.Record, opts Options) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No ticker selected.")
		return err
	}
	rec := records[0]

	for i, cat := range types.Categories {
		title := cat.Name
		if opts.Color {
			title = text.Bold.Sprint(title)
		}
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
		for _, f := range cat.Fields {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", f, rec.Get(f)); err != nil {
				return err
			}
		}
		if i < len(types.Categories)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}
