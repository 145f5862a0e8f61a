package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldMapping associates placeholder names with column names.
// Keys are stored upper-cased and iterate in insertion order; reassigning
// an existing key keeps its position. The zero value is an empty mapping.
type FieldMapping struct {
	keys    []string
	columns map[string]string
}

// MappingEntry is a single placeholder to column association.
type MappingEntry struct {
	Placeholder string `json:"placeholder"`
	Column      string `json:"column"`
}

// NewFieldMapping builds a mapping from entries in order.
func NewFieldMapping(entries ...MappingEntry) FieldMapping {
	var m FieldMapping
	for _, e := range entries {
		m.Set(e.Placeholder, e.Column)
	}
	return m
}

// NormalizeName trims and upper-cases a placeholder name.
func NormalizeName(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

// Set assigns column to placeholder. An empty column removes the entry.
func (m *FieldMapping) Set(placeholder, column string) {
	key := NormalizeName(placeholder)
	if key == "" {
		return
	}
	if column == "" {
		m.Delete(key)
		return
	}
	if m.columns == nil {
		m.columns = make(map[string]string)
	}
	if _, ok := m.columns[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.columns[key] = column
}

// Delete removes placeholder from the mapping.
func (m *FieldMapping) Delete(placeholder string) {
	key := NormalizeName(placeholder)
	if _, ok := m.columns[key]; !ok {
		return
	}
	delete(m.columns, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Get returns the column mapped to placeholder.
func (m FieldMapping) Get(placeholder string) (string, bool) {
	col, ok := m.columns[NormalizeName(placeholder)]
	return col, ok
}

// Len returns the number of entries.
func (m FieldMapping) Len() int {
	return len(m.keys)
}

// Entries returns the entries in insertion order.
func (m FieldMapping) Entries() []MappingEntry {
	entries := make([]MappingEntry, 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, MappingEntry{Placeholder: k, Column: m.columns[k]})
	}
	return entries
}

// Clone returns an independent copy.
func (m FieldMapping) Clone() FieldMapping {
	return NewFieldMapping(m.Entries()...)
}

// Equal reports whether both mappings hold the same entries in the same order.
func (m FieldMapping) Equal(other FieldMapping) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.columns[k] != m.columns[k] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (m FieldMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.columns[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping document order.
func (m *FieldMapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = FieldMapping{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("field mapping: expected object, got %v", tok)
	}

	var out FieldMapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("field mapping: invalid key %v", keyTok)
		}
		var column string
		if err := dec.Decode(&column); err != nil {
			return fmt.Errorf("field mapping: value for %q: %w", key, err)
		}
		out.Set(key, column)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
