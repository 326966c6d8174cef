package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetGrid reads one sheet into a cell grid.
func SheetGrid(f *excelize.File, sheet string) (Grid, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return Grid(rows), nil
}

// FirstSheet returns the workbook's first sheet name, or "".
func FirstSheet(f *excelize.File) string {
	list := f.GetSheetList()
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
