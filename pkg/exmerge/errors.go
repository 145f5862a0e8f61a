package exmerge

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrEmptyWorkbook indicates the input holds no cells.
var ErrEmptyWorkbook = errors.New("the spreadsheet is empty")

// ErrUnsupportedFormat indicates the input is not a readable spreadsheet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Ingestion stages reported by IngestionError.
const (
	StageOpen      = "open"
	StageRead      = "read"
	StageNormalize = "normalize"
)

// IngestionError represents an error while reading a spreadsheet.
type IngestionError struct {
	Source string
	Stage  string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Stage, e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// NewIngestionError creates a new IngestionError.
func NewIngestionError(source, stage string, err error) *IngestionError {
	return &IngestionError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
