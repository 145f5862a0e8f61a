package parser

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiterCandidates are tried by SniffDelimiter in order of preference.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// ReadDelimited parses delimited text. A UTF-8 byte order mark is dropped;
// input that is not valid UTF-8 is decoded as Windows-1252, the encoding
// spreadsheet programs commonly use for CSV exports. A zero comma is sniffed
// from the first line.
func ReadDelimited(data []byte, comma rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = charmap.Windows1252.NewDecoder().Reader(src)
	}
	if comma == 0 {
		comma = SniffDelimiter(data)
	}

	reader := csv.NewReader(src)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	return reader.ReadAll()
}

// SniffDelimiter returns the candidate delimiter occurring most often in
// the first line of data, preferring comma on ties.
func SniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := ',', 0
	for _, c := range delimiterCandidates {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// LooksBinary reports whether data contains NUL bytes near its start.
func LooksBinary(data []byte) bool {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// HasZipMagic reports whether data starts like a ZIP container.
func HasZipMagic(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// HasOLEMagic reports whether data starts like an OLE2 compound file.
func HasOLEMagic(data []byte) bool {
	return bytes.HasPrefix(data, oleMagic)
}
