// Package mapping resolves template placeholders to spreadsheet columns.
package mapping

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

// DefaultPreviewSize is the number of sample values shown per mapped column.
const DefaultPreviewSize = 3

// Set assigns column to placeholder in m, deleting the entry when column is empty.
func Set(m *models.FieldMapping, placeholder, column string) {
	m.Set(placeholder, column)
}

// AutoMap builds a new mapping for detected placeholders from the available
// columns. A case-insensitive exact match wins; otherwise the first column
// whose name contains the placeholder, or is contained by it, is used.
// Column names are compared as written: surrounding spaces are not trimmed.
// Placeholders without a candidate stay unmapped. The result replaces any
// previous mapping; it is never merged.
func AutoMap(detected, columns []string) models.FieldMapping {
	upper := cases.Upper(language.Und)
	upperCols := make([]string, len(columns))
	for i, c := range columns {
		upperCols[i] = upper.String(c)
	}

	var m models.FieldMapping
	for _, field := range detected {
		if col, ok := matchColumn(models.NormalizeName(field), columns, upperCols); ok {
			m.Set(field, col)
		}
	}
	return m
}

func matchColumn(field string, columns, upperCols []string) (string, bool) {
	if field == "" {
		return "", false
	}
	for i, uc := range upperCols {
		if uc == field {
			return columns[i], true
		}
	}
	for i, uc := range upperCols {
		if uc == "" {
			continue
		}
		if strings.Contains(uc, field) || strings.Contains(field, uc) {
			return columns[i], true
		}
	}
	return "", false
}

// Mapped returns the detected placeholders that have a column assigned.
func Mapped(detected []string, m models.FieldMapping) []string {
	return filter(detected, m, true)
}

// Unmapped returns the detected placeholders without a column.
func Unmapped(detected []string, m models.FieldMapping) []string {
	return filter(detected, m, false)
}

func filter(detected []string, m models.FieldMapping, mapped bool) []string {
	out := []string{}
	for _, field := range detected {
		col, ok := m.Get(field)
		if (ok && col != "") == mapped {
			out = append(out, field)
		}
	}
	return out
}

// Preview returns up to n non-empty values of column taken from the first n rows.
func Preview(data *models.TabularData, column string, n int) []string {
	idx := data.ColumnIndex(column)
	if idx < 0 || n <= 0 {
		return nil
	}

	var values []string
	for i, row := range data.Rows {
		if i >= n {
			break
		}
		if idx < len(row) && row[idx] != "" {
			values = append(values, row[idx])
		}
	}
	return values
}
