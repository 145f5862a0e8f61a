package parser

import (
	"github.com/xuri/excelize/v2"
)

// FirstSheet returns the name of the first sheet in workbook order.
func FirstSheet(f *excelize.File) (string, bool) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", false
	}
	return sheets[0], true
}

// ExtractRows reads all rows of a sheet as strings.
// With raw set, cell values are returned unformatted (numbers and dates as stored).
func ExtractRows(f *excelize.File, sheetName string, raw bool) ([][]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: raw})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
