// Package models defines data structures shared by the merge pipeline.
package models

// TabularData represents the header row and data rows read from a spreadsheet.
type TabularData struct {
	// SourceName is the file name the data was read from (no path).
	SourceName string `json:"source_name,omitempty"`
	// Sheet is the sheet name read (empty for delimited text).
	Sheet string `json:"sheet,omitempty"`
	// Headers contains the column names in sheet order.
	Headers []string `json:"headers"`
	// Rows contains data rows, each with exactly len(Headers) cells.
	Rows [][]string `json:"rows"`
}

// ColumnIndex returns the index of the first header equal to name, or -1.
func (d *TabularData) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// RowData maps each header to the cell value of row i.
// Later duplicate headers overwrite earlier ones.
func (d *TabularData) RowData(i int) map[string]string {
	row := d.Rows[i]
	data := make(map[string]string, len(d.Headers))
	for col, header := range d.Headers {
		value := ""
		if col < len(row) {
			value = row[col]
		}
		data[header] = value
	}
	return data
}
