package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMappingSet(t *testing.T) {
	var m FieldMapping
	m.Set("nombre", "Nombre")
	m.Set("CEDULA", "Cedula")
	m.Set(" correo ", "Email")

	require.Equal(t, 3, m.Len())
	col, ok := m.Get("NOMBRE")
	require.True(t, ok)
	assert.Equal(t, "Nombre", col)

	// Reassignment keeps the original position.
	m.Set("NOMBRE", "Nombre completo")
	assert.Equal(t, []MappingEntry{
		{Placeholder: "NOMBRE", Column: "Nombre completo"},
		{Placeholder: "CEDULA", Column: "Cedula"},
		{Placeholder: "CORREO", Column: "Email"},
	}, m.Entries())

	// Empty column deletes.
	m.Set("cedula", "")
	_, ok = m.Get("CEDULA")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())

	// Re-adding moves the key to the end.
	m.Set("CEDULA", "Cedula")
	assert.Equal(t, "CEDULA", m.Entries()[2].Placeholder)
}

func TestFieldMappingIgnoresEmptyPlaceholder(t *testing.T) {
	var m FieldMapping
	m.Set("  ", "Nombre")
	assert.Equal(t, 0, m.Len())
}

func TestFieldMappingCloneIsIndependent(t *testing.T) {
	m := NewFieldMapping(MappingEntry{Placeholder: "A_B", Column: "x"})
	c := m.Clone()
	c.Set("A_B", "y")
	c.Set("C_D", "z")

	col, _ := m.Get("A_B")
	assert.Equal(t, "x", col)
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.Equal(c))
	assert.True(t, m.Equal(m.Clone()))
}

func TestFieldMappingJSONKeepsOrder(t *testing.T) {
	m := NewFieldMapping(
		MappingEntry{Placeholder: "ZETA", Column: "z"},
		MappingEntry{Placeholder: "ALFA", Column: "a \"quoted\""},
	)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ZETA":"z","ALFA":"a \"quoted\""}`, string(data))
	assert.Equal(t, `{"ZETA":"z","ALFA":"a \"quoted\""}`, string(data))

	var decoded FieldMapping
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":"z","alfa":"a","gone":""}`), &decoded))
	assert.Equal(t, []MappingEntry{
		{Placeholder: "ZETA", Column: "z"},
		{Placeholder: "ALFA", Column: "a"},
	}, decoded.Entries())
}

func TestFieldMappingJSONRejectsNonObject(t *testing.T) {
	var m FieldMapping
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &m))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())
}

func TestTabularDataRowData(t *testing.T) {
	d := &TabularData{
		Headers: []string{"Nombre", "Correo"},
		Rows:    [][]string{{"Ana", "ana@example.com"}, {"Luis"}},
	}

	assert.Equal(t, map[string]string{"Nombre": "Ana", "Correo": "ana@example.com"}, d.RowData(0))
	assert.Equal(t, map[string]string{"Nombre": "Luis", "Correo": ""}, d.RowData(1))
	assert.Equal(t, 1, d.ColumnIndex("Correo"))
	assert.Equal(t, -1, d.ColumnIndex("correo"))

	var nilData *TabularData
	assert.Equal(t, -1, nilData.ColumnIndex("Nombre"))
}

func TestEmailTemplateIsBlank(t *testing.T) {
	assert.True(t, EmailTemplate{Subject: "Hola", Body: " \n\t"}.IsBlank())
	assert.False(t, EmailTemplate{Body: "Hola"}.IsBlank())
}
