package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exmerge-go/pkg/exmerge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exmerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("EXMERGE_SUBJECT", "Curso pendiente")
	path := writeConfig(t, `
ingest:
  chunk_size: 250
  delimiter: ";"
template:
  subject: "${EXMERGE_SUBJECT}"
server:
  addr: "127.0.0.1:9000"
  read_timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Ingest.ChunkSize)
	assert.Equal(t, ';', cfg.Ingest.DelimiterRune())
	assert.Equal(t, "Curso pendiente", cfg.Template.Subject)
	assert.Equal(t, DefaultBody, cfg.Template.Body)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "correos.csv", cfg.Export.CSVFile)
	assert.Equal(t, 80, cfg.Export.SeparatorWidth)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "ingest: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "ingest:\n  delimiter: \";;\"\n"))
	assert.ErrorContains(t, err, "single character")

	_, err = Load(writeConfig(t, "ingest:\n  format: ods\n"))
	assert.ErrorContains(t, err, "ingest.format")
}

func TestLoadOrDefault(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("log:\n  level: debug\n"), 0o644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, rune(0), IngestConfig{}.DelimiterRune())
	assert.Equal(t, '\t', IngestConfig{Delimiter: `\t`}.DelimiterRune())
	assert.Equal(t, '|', IngestConfig{Delimiter: "|"}.DelimiterRune())
}

func TestInputFormat(t *testing.T) {
	assert.Equal(t, exmerge.FormatAuto, IngestConfig{}.InputFormat())
	assert.Equal(t, exmerge.FormatCSV, IngestConfig{Format: "CSV"}.InputFormat())
	assert.Equal(t, exmerge.FormatXLS, IngestConfig{Format: "xls"}.InputFormat())
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
