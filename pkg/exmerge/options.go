// Package exmerge reads spreadsheets into tabular data for email merging.
package exmerge

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/parser"
)

// Format represents the input file format.
type Format string

const (
	// FormatAuto picks the format from the file extension, then from the content.
	FormatAuto Format = "auto"
	// FormatXLSX reads Office Open XML workbooks (.xlsx, .xlsm, .xltx, .xltm).
	FormatXLSX Format = "xlsx"
	// FormatXLS reads legacy BIFF workbooks (.xls).
	FormatXLS Format = "xls"
	// FormatCSV reads delimited text (.csv, .tsv, .txt).
	FormatCSV Format = "csv"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, true
	case FormatXLSX, FormatXLS, FormatCSV:
		return f, true
	}
	return "", false
}

// Options configures ingestion behavior.
type Options struct {
	// Format forces the input format. Empty means FormatAuto.
	Format Format
	// ChunkSize is the number of rows processed between progress reports.
	// If zero, parser.DefaultChunkSize is used.
	ChunkSize int
	// Delimiter separates fields in delimited text.
	// If zero, tab is used for .tsv files and the delimiter is sniffed otherwise.
	Delimiter rune
	// FormattedValues returns cell values as displayed by the spreadsheet
	// instead of the stored raw values.
	FormattedValues bool
	// OnProgress receives the completed percentage after each chunk.
	OnProgress func(percent int)
}

// DefaultOptions returns default ingestion options.
func DefaultOptions() Options {
	return Options{
		Format:    FormatAuto,
		ChunkSize: parser.DefaultChunkSize,
	}
}

// EffectiveChunkSize returns the chunk size to use.
func (o Options) EffectiveChunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return parser.DefaultChunkSize
}

// EffectiveDelimiter returns the delimiter for a file name, or zero to sniff it.
func (o Options) EffectiveDelimiter(name string) rune {
	if o.Delimiter != 0 {
		return o.Delimiter
	}
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}
	return 0
}

// DetectFormat picks the format of a file from its name and content.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	}

	switch {
	case parser.HasZipMagic(data):
		return FormatXLSX
	case parser.HasOLEMagic(data):
		return FormatXLS
	case parser.LooksBinary(data):
		return ""
	}
	return FormatCSV
}
