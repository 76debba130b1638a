package render

import (
	"encoding/json"
	"io"

	"tickwatch/pkg/tickwatch/types"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Ticker string            `json:"ticker"`
	Fields map[string]string `json:"fields"`
}

// JSONRenderer encodes records as a JSON array in watch-list order.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (JSONRenderer) Render(w io.Writer, records []types.Record, opts Options) error {
	cols := opts.columnsOrAll()
	out := make([]jsonModel, 0, len(records))
	for _, rec := range records {
		fields := make(map[string]string, len(cols))
		for _, c := range cols {
			fields[c] = rec.Get(c)
		}
		out = append(out, jsonModel{Ticker: rec.Ticker(), Fields: fields})
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
