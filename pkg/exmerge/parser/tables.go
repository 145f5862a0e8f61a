package parser

import (
	"context"
	"runtime"
)

// TrimToData drops the empty rows above and the empty columns left of the
// first non-empty cell, so the first returned row is the header row.
// It returns nil when every cell is empty.
func TrimToData(rows [][]string) [][]string {
	minRow, minCol := findDataOrigin(rows)
	if minRow < 0 {
		return nil
	}

	out := make([][]string, 0, len(rows)-minRow)
	for _, row := range rows[minRow:] {
		if len(row) > minCol {
			out = append(out, row[minCol:])
		} else {
			out = append(out, nil)
		}
	}
	return out
}

// findDataOrigin finds the top row and left column of non-empty cells.
func findDataOrigin(rows [][]string) (minRow, minCol int) {
	minRow, minCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			break
		}
	}

	return
}

// NormalizeRows pads or truncates every row to width and drops rows whose
// cells are all empty. Rows are processed in chunks of chunkSize; after each
// chunk progress receives the completed percentage and ctx is checked, so a
// superseded ingestion can stop early. progress always ends with 100.
func NormalizeRows(ctx context.Context, rows [][]string, width, chunkSize int, progress func(int)) ([][]string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	report := func(p int) {
		if progress != nil {
			progress(p)
		}
	}

	out := make([][]string, 0, len(rows))
	total := len(rows)
	for start := 0; start < total; start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+chunkSize, total)
		for _, row := range rows[start:end] {
			cells := make([]string, width)
			copy(cells, row)
			if !isEmptyRow(cells) {
				out = append(out, cells)
			}
		}

		report(percent(end, total))
		runtime.Gosched()
	}

	if total == 0 {
		report(100)
	}
	return out, nil
}

func percent(done, total int) int {
	return (done*200 + total) / (2 * total)
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
