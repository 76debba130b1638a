// Package render draws records as a terminal table, grouped detail panels,
// JSON, or a bare symbol line.
package render

import (
	"io"

	"tickwatch/pkg/tickwatch/types"
)

// Renderer renders records to an output writer.
type Renderer interface {
	Render(w io.Writer, records []types.Record, opts Options) error
}

// Options control rendering across the implementations; each reads the
// subset it understands.
type Options struct {
	Columns     []string // subset of the schema; empty means all fields
	Color       bool
	Live        bool // include live price/chg% columns in the table
	PrettyJSON  bool
	MaxColWidth int
}

// columnsOrAll returns opts.Columns, defaulting to the full schema.
func (o Options) columnsOrAll() []string {
	if len(o.Columns) > 0 {
		return o.Columns
	}
	return types.Fields
}
