package exmerge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/parser"
)

// Ingest reads the first sheet of a spreadsheet file into tabular data.
// The first non-empty row becomes the header row; fully empty data rows are dropped.
func Ingest(ctx context.Context, path string, opts Options) (*models.TabularData, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, NewIngestionError(filepath.Base(path), StageOpen, err)
	}
	defer f.Close()

	return IngestReader(ctx, f, filepath.Base(path), opts)
}

// IngestReader is like Ingest but reads from r. name is used for format
// detection and reporting.
func IngestReader(ctx context.Context, r io.Reader, name string, opts Options) (*models.TabularData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewIngestionError(name, StageRead, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyWorkbook
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(name, data)
	}

	var (
		sheet string
		raw   [][]string
	)
	switch format {
	case FormatXLSX:
		sheet, raw, err = readWorkbook(data, !opts.FormattedValues)
	case FormatXLS:
		sheet, raw, err = parser.ReadLegacyWorkbook(bytes.NewReader(data))
	case FormatCSV:
		raw, err = parser.ReadDelimited(data, opts.EffectiveDelimiter(name))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, NewIngestionError(name, StageRead, err)
	}

	raw = parser.TrimToData(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyWorkbook
	}

	headers := raw[0]
	rows, err := parser.NormalizeRows(ctx, raw[1:], len(headers), opts.EffectiveChunkSize(), opts.OnProgress)
	if err != nil {
		return nil, NewIngestionError(name, StageNormalize, err)
	}

	return &models.TabularData{
		SourceName: name,
		Sheet:      sheet,
		Headers:    headers,
		Rows:       rows,
	}, nil
}

func readWorkbook(data []byte, raw bool) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	sheet, ok := parser.FirstSheet(f)
	if !ok {
		return "", nil, nil
	}
	rows, err := parser.ExtractRows(f, sheet, raw)
	if err != nil {
		return "", nil, err
	}
	return sheet, rows, nil
}
