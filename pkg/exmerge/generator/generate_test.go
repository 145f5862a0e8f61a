package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

func mapping(pairs ...string) models.FieldMapping {
	var m models.FieldMapping
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestGenerateSingleRow(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"NOMBRE"},
		Rows:    [][]string{{"Ana"}},
	}
	tpl := models.EmailTemplate{Body: "Hola {{NOMBRE}}"}

	emails := Generate(data, tpl, mapping("NOMBRE", "NOMBRE"))
	require.Len(t, emails, 1)
	assert.Equal(t, "Hola Ana", emails[0].Body)
	assert.Equal(t, 1, emails[0].ID)
	assert.Equal(t, "", emails[0].Recipient)
	assert.Equal(t, map[string]string{"NOMBRE": "Ana"}, emails[0].RowData)
}

func TestGenerateEmptyInputs(t *testing.T) {
	data := &models.TabularData{Headers: []string{"NOMBRE"}, Rows: [][]string{{"Ana"}}}
	m := mapping("NOMBRE", "NOMBRE")

	tests := []struct {
		name string
		data *models.TabularData
		tpl  models.EmailTemplate
	}{
		{"nil data", nil, models.EmailTemplate{Body: "Hola"}},
		{"zero rows", &models.TabularData{Headers: []string{"NOMBRE"}}, models.EmailTemplate{Body: "Hola"}},
		{"blank body", data, models.EmailTemplate{Subject: "Asunto", Body: "  \n "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := Generate(tt.data, tt.tpl, m)
			assert.Empty(t, emails)
			assert.Equal(t, models.Statistics{IsEmpty: true}, Stats(emails))
		})
	}
}

func TestGenerateAllSyntaxes(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Nombre", "Cedula", "Curso"},
		Rows:    [][]string{{"Ana", "123", "SARLAF"}},
	}
	tpl := models.EmailTemplate{
		Subject: "Tu [curso] para {{Nombre}}",
		Body:    "Señor {{NOMBRE}} con C.C. {CEDULA}, programa <Curso>. NOMBRE; nombres",
	}
	m := mapping("NOMBRE", "Nombre", "CEDULA", "Cedula", "CURSO", "Curso")

	emails := Generate(data, tpl, m)
	require.Len(t, emails, 1)
	assert.Equal(t, "Tu SARLAF para Ana", emails[0].Subject)
	assert.Equal(t, "Señor Ana con C.C. 123, programa SARLAF. Ana; nombres", emails[0].Body)
}

func TestGenerateBareWordIsCaseInsensitive(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Curso"},
		Rows:    [][]string{{"SARLAF"}},
	}
	tpl := models.EmailTemplate{Body: "El curso [CURSO]"}

	emails := Generate(data, tpl, mapping("CURSO", "Curso"))
	assert.Equal(t, "El SARLAF SARLAF", emails[0].Body)
}

func TestGenerateUnmappedAndMissingColumns(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Nombre"},
		Rows:    [][]string{{"Ana"}},
	}
	tpl := models.EmailTemplate{Body: "{{NOMBRE}} {{CEDULA}} {{CURSO}}"}
	m := mapping("NOMBRE", "Nombre", "CURSO", "Columna inexistente")

	emails := Generate(data, tpl, m)
	require.Len(t, emails, 1)
	assert.Equal(t, "Ana {{CEDULA}} ", emails[0].Body)
}

func TestGenerateValueIsLiteral(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Precio", "Codigo"},
		Rows:    [][]string{{"$1 y $2", "a.b(c)"}},
	}
	tpl := models.EmailTemplate{Body: "Total {PRECIO} codigo {A.B(C)}"}
	m := mapping("PRECIO", "Precio", "A.B(C)", "Codigo")

	emails := Generate(data, tpl, m)
	require.Len(t, emails, 1)
	assert.Equal(t, "Total $1 y $2 codigo a.b(c)", emails[0].Body)
}

func TestGenerateOverlapFollowsMappingOrder(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Nombre", "Completo"},
		Rows:    [][]string{{"Ana", "Ana Perez"}},
	}
	tpl := models.EmailTemplate{Body: "{{NOMBRE_COMPLETO}} / {{NOMBRE}}"}

	longFirst := Generate(data, tpl, mapping("NOMBRE_COMPLETO", "Completo", "NOMBRE", "Nombre"))
	assert.Equal(t, "Ana Perez / Ana", longFirst[0].Body)

	// Underscore is a word character, so the bare NOMBRE pattern does not
	// match inside NOMBRE_COMPLETO either way.
	shortFirst := Generate(data, tpl, mapping("NOMBRE", "Nombre", "NOMBRE_COMPLETO", "Completo"))
	assert.Equal(t, "Ana Perez / Ana", shortFirst[0].Body)

	spaced := models.EmailTemplate{Body: "{{NOMBRE COMPLETO}}"}
	got := Generate(data, spaced, mapping("NOMBRE", "Nombre", "NOMBRE COMPLETO", "Completo"))
	assert.Equal(t, "{{Ana COMPLETO}}", got[0].Body)
}

func TestGenerateRecipient(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Nombre", "Email", "Correo2"},
		Rows: [][]string{
			{"Ana", "ana@example.com", "otra@example.com"},
			{"Luis", "", "luis@example.com"},
			{"Marta", "   ", ""},
		},
	}
	tpl := models.EmailTemplate{Body: "Hola"}

	emails := Generate(data, tpl, models.FieldMapping{})
	require.Len(t, emails, 3)
	assert.Equal(t, "ana@example.com", emails[0].Recipient)
	assert.Equal(t, "", emails[1].Recipient)
	assert.Equal(t, "   ", emails[2].Recipient)

	stats := Stats(emails)
	assert.Equal(t, models.Statistics{Total: 3, WithRecipient: 1, WithoutRecipient: 2}, stats)
	assert.Equal(t, stats.Total, stats.WithRecipient+stats.WithoutRecipient)
}

func TestRecipientColumn(t *testing.T) {
	tests := []struct {
		headers []string
		want    string
		ok      bool
	}{
		{[]string{"Email", "Correo2"}, "Email", true},
		{[]string{"Nombre", "CORREO electrónico"}, "CORREO electrónico", true},
		{[]string{"Nombre", "E-Mail"}, "E-Mail", true},
		{[]string{"Nombre", "Cedula"}, "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		got, ok := RecipientColumn(tt.headers)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	data := &models.TabularData{
		Headers: []string{"Nombre", "Correo"},
		Rows:    [][]string{{"Ana", "a@x.com"}, {"Luis", "l@x.com"}, {"Marta", ""}},
	}
	tpl := models.EmailTemplate{Subject: "Hola NOMBRE", Body: "Estimado {{NOMBRE}}"}
	m := mapping("NOMBRE", "Nombre")

	first := Generate(data, tpl, m)
	second := Generate(data, tpl, m)
	assert.Equal(t, first, second)
	for i, e := range first {
		assert.Equal(t, i+1, e.ID)
	}
}
