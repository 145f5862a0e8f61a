package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// maxLegacyColumns is the column limit of BIFF8 worksheets.
const maxLegacyColumns = 256

// errNoWorkbookStream indicates an OLE2 file without a Workbook or Book stream.
var errNoWorkbookStream = errors.New("no workbook stream in xls file")

// ReadLegacyWorkbook reads the first sheet of a BIFF (.xls) workbook.
// Rows without cells come back as nil.
func ReadLegacyWorkbook(r io.ReadSeeker) (sheetName string, rows [][]string, err error) {
	// The BIFF decoder panics on some malformed records.
	defer func() {
		if p := recover(); p != nil {
			sheetName, rows = "", nil
			err = fmt.Errorf("corrupt xls workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return "", nil, err
	}
	if wb == nil {
		return "", nil, errNoWorkbookStream
	}
	if wb.NumSheets() == 0 {
		return "", nil, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return "", nil, nil
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := legacyRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, legacyCells(row))
	}
	return sheet.Name, rows, nil
}

// legacyRow returns row i, or nil when the sheet holds no cells for it.
// WorkSheet.Row dereferences the missing row instead of returning nil.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// legacyCells reads the cells of row. Rows created from cell records alone
// carry no ROW record and report LastCol 0; their width is found by scanning.
func legacyCells(row *xls.Row) []string {
	width := row.LastCol()
	if width == 0 {
		for c := 0; c < maxLegacyColumns; c++ {
			if row.Col(c) != "" {
				width = c + 1
			}
		}
	}

	cells := make([]string, width)
	for c := range cells {
		cells[c] = row.Col(c)
	}
	return cells
}
