package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/everydev1618/quizgen/table"
)

// SheetName is the worksheet the table is written to.
const SheetName = "Quiz"

// WriteXLSX writes t to a workbook with the same layout as WriteCSV: one
// row per record and an empty row after every group.
func WriteXLSX(w io.Writer, t table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	r := 1
	for _, g := range t {
		for _, row := range g {
			cell, err := excelize.CoordinatesToCellName(1, r)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for i, v := range row {
				values[i] = v
			}
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
			r++
		}
		r++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
