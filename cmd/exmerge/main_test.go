package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	templatePath, subjectText, bodyText = "", "", ""
	mapFlags, autoMap, inputFormat = nil, false, ""
	format, outputPath, outDir, pretty, emailID = "text", "", "", false, 0
	addr = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseMapFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    [][2]string
		wantErr bool
	}{
		{"empty", nil, [][2]string{}, false},
		{"pairs", []string{"NOMBRE=Nombre", "CURSO=Curso del mes"}, [][2]string{{"NOMBRE", "Nombre"}, {"CURSO", "Curso del mes"}}, false},
		{"column with equals", []string{"A=x=y"}, [][2]string{{"A", "x=y"}}, false},
		{"unmap", []string{"NOMBRE="}, [][2]string{{"NOMBRE", ""}}, false},
		{"missing separator", []string{"NOMBRE"}, nil, true},
		{"missing field", []string{"=Nombre"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMapFlags(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := execute(t, "detect", "--subject", "Curso {{CURSO}}", "--body", "Hola [nombre]")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected fields (2):")
	assert.Contains(t, out, "CURSO")
	assert.Contains(t, out, "{{NOMBRE}}")
	assert.Contains(t, out, "Suggestions: CEDULA")
	assert.NotContains(t, out, "Suggestions: NOMBRE")
}

func TestSuggestCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := execute(t, "suggest", "--body", "{{NOMBRE}} {{CEDULA}}")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.NotContains(t, lines, "NOMBRE")
	assert.Contains(t, lines, "CORREO")
}

func TestMapCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	data := writeFile(t, dir, "datos.csv", "Nombre,Correo,Curso\nAna,ana@example.com,SARLAF\n")

	out, _, err := execute(t, "map", data, "--body", "{{NOMBRE}} {{CURSO}} {{FECHA}}", "--auto", "--map", "CURSO=Nombre")
	require.NoError(t, err)
	assert.Contains(t, out, "Columns: Nombre, Correo, Curso")
	assert.Contains(t, out, "Rows: 1")
	assert.Regexp(t, `CURSO\s+-> Nombre\s+Ana`, out)
	assert.Contains(t, out, "Unmapped fields: FECHA")

	tsv := writeFile(t, dir, "datos.dat", "Nombre\tCurso\nAna\tSARLAF\n")
	out, _, err = execute(t, "map", tsv, "--input-format", "csv", "--body", "{{CURSO}}", "--auto")
	require.NoError(t, err)
	assert.Contains(t, out, "Columns: Nombre, Curso")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	data := writeFile(t, dir, "datos.csv", "Nombre,Correo\nAna,ana@example.com\nLuis,\n")
	tpl := writeFile(t, dir, "plantilla.yaml", "subject: Hola {{NOMBRE}}\nbody: Estimado {{NOMBRE}}\n")

	out, stderr, err := execute(t, "generate", data, "--template", tpl, "--auto", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Total: 2  With recipient: 1  Without recipient: 1")
	assert.Equal(t, "ID,Destinatario,Asunto,Cuerpo\n"+
		`1,"ana@example.com","Hola Ana","Estimado Ana"`+"\n"+
		`2,"","Hola Luis","Estimado Luis"`+"\n", out)

	out, _, err = execute(t, "generate", data, "--template", tpl, "--auto", "--email", "2")
	require.NoError(t, err)
	assert.Equal(t, "Para: Sin destinatario\nAsunto: Hola Luis\n\nEstimado Luis\n", out)

	_, _, err = execute(t, "generate", data, "--template", tpl, "--auto", "--out-dir", filepath.Join(dir, "out"))
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "out", "correos.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "CORREO #2\nPara: Sin destinatario")
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	data := writeFile(t, dir, "datos.csv", "Nombre\nAna\n")

	_, _, err := execute(t, "generate", data, "--format", "pdf")
	assert.ErrorContains(t, err, "invalid format")

	_, _, err = execute(t, "generate", data, "-o", "a.txt", "--out-dir", "out")
	assert.Error(t, err)

	_, _, err = execute(t, "generate", filepath.Join(dir, "missing.csv"))
	assert.ErrorContains(t, err, "file not found")

	_, _, err = execute(t, "map", data, "--input-format", "ods")
	assert.ErrorContains(t, err, "invalid input format")

	_, _, err = execute(t, "map", data, "--map", "NOMBRE")
	assert.ErrorContains(t, err, "expected FIELD=COLUMN")
}

// chdir changes the working directory for the duration of the test,
// restoring the previous one on cleanup (equivalent to testing.T.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
