// Package export writes extracted records to an XLSX workbook.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tickwatch/pkg/tickwatch/types"
)

// Sentinel outcomes for an export that writes no file.
var (
	ErrNoTickers = errors.New("no tickers to export")
	ErrNoData    = errors.New("no data to export")
)

// WriteWorkbook writes a single-sheet workbook: row 1 is the schema field
// names in order, rows 2..N one record each, all cells as strings. Callers
// only reach this with at least one record.
func WriteWorkbook(path string, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(types.Fields))
	for i, field := range types.Fields {
		header[i] = field
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := make([]any, len(types.Fields))
		for j, field := range types.Fields {
			row[j] = rec.Get(field)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
