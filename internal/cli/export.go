package cli

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders export rows into an .xlsx workbook at path. The
// backend returns loosely-typed records; the column set is the union of
// all row keys, sorted, so every value lands in a stable column whatever
// subset of fields each row carries.
func writeWorkbook(path, sheet string, rows []map[string]any) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if sheet != "Sheet1" {
		if err := wb.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	columns := columnSet(rows)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cells := make([]any, len(columns))
		for j, c := range columns {
			cells[j] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func columnSet(rows []map[string]any) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}
