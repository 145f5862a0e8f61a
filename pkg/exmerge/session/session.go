// Package session holds the state of one merge workflow: the uploaded data,
// the template, the field mapping and the active step. Derived values are
// memoized and recomputed only when one of their inputs changes.
package session

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/ukaji3/exmerge-go/pkg/exmerge"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/config"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/generator"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/mapping"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/metrics"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/output"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/placeholder"
)

// ErrSuperseded is returned by Load when a later load or a reset replaced it.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Session is safe for concurrent use.
type Session struct {
	mu  sync.Mutex
	cfg config.Config

	data       *models.TabularData
	dataGen    uint64
	loadSeq    uint64
	cancelLoad context.CancelFunc
	loading    bool
	progress   int
	lastErr    error

	tpl     models.EmailTemplate
	mapping models.FieldMapping
	step    Step

	fieldsText string
	fields     []string

	emailsKey   uint64
	emailsValid bool
	emails      []models.GeneratedEmail
}

// New creates a session starting at the upload step with the configured template.
func New(cfg config.Config) *Session {
	s := &Session{cfg: cfg}
	s.resetLocked()
	return s
}

func (s *Session) resetLocked() {
	s.stopLoadLocked()
	s.data = nil
	s.dataGen++
	s.loading = false
	s.progress = 0
	s.lastErr = nil
	s.tpl = models.EmailTemplate{Subject: s.cfg.Template.Subject, Body: s.cfg.Template.Body}
	s.mapping = models.FieldMapping{}
	s.step = StepUpload
}

func (s *Session) stopLoadLocked() {
	s.loadSeq++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

// Reset discards the data and restores the default template, mapping and step.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// IngestOptions returns the ingestion options derived from the configuration.
func (s *Session) IngestOptions() exmerge.Options {
	opts := exmerge.DefaultOptions()
	opts.Format = s.cfg.Ingest.InputFormat()
	opts.ChunkSize = s.cfg.Ingest.ChunkSize
	opts.Delimiter = s.cfg.Ingest.DelimiterRune()
	opts.FormattedValues = s.cfg.Ingest.FormattedValues
	return opts
}

// Load reads a spreadsheet file into the session. See LoadReader.
func (s *Session) Load(ctx context.Context, path string) error {
	return s.load(ctx, path, func(ctx context.Context, opts exmerge.Options) (*models.TabularData, error) {
		return exmerge.Ingest(ctx, path, opts)
	})
}

// LoadReader reads spreadsheet content into the session. A failed load
// keeps the previously loaded data and records the error; a load that is
// superseded by a newer load, ClearData or Reset is cancelled.
func (s *Session) LoadReader(ctx context.Context, r io.Reader, name string) error {
	return s.load(ctx, name, func(ctx context.Context, opts exmerge.Options) (*models.TabularData, error) {
		return exmerge.IngestReader(ctx, r, name, opts)
	})
}

type ingestFunc func(ctx context.Context, opts exmerge.Options) (*models.TabularData, error)

func (s *Session) load(ctx context.Context, name string, ingest ingestFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.stopLoadLocked()
	seq := s.loadSeq
	s.cancelLoad = cancel
	s.loading = true
	s.progress = 0
	s.lastErr = nil
	opts := s.IngestOptions()
	s.mu.Unlock()

	opts.OnProgress = func(p int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.loadSeq == seq && p > s.progress {
			s.progress = p
		}
		log.Debug("Ingestion progress", "file", name, "percent", p)
	}

	start := time.Now()
	data, err := ingest(ctx, opts)
	rows := 0
	if data != nil {
		rows = len(data.Rows)
	}
	metrics.RecordIngest(time.Since(start), rows, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return ErrSuperseded
	}
	s.cancelLoad = nil
	s.loading = false
	if err != nil {
		s.lastErr = err
		log.Warn("Failed to read spreadsheet", "file", name, "err", err)
		return err
	}

	s.data = data
	s.dataGen++
	s.progress = 100
	log.Info("Spreadsheet loaded", "file", name, "columns", len(data.Headers), "rows", len(data.Rows))
	return nil
}

// ClearData discards the loaded data and stops any load in progress.
func (s *Session) ClearData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLoadLocked()
	s.data = nil
	s.dataGen++
	s.loading = false
	s.progress = 0
	s.lastErr = nil
}

// Data returns the loaded data, or nil.
func (s *Session) Data() *models.TabularData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Progress returns the completion percentage of the current or last load.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Loading reports whether a load is in progress.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the error of the last failed load.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetSubject replaces the subject template.
func (s *Session) SetSubject(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tpl.Subject = subject
}

// SetBody replaces the body template.
func (s *Session) SetBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tpl.Body = body
}

// SetTemplate replaces subject and body.
func (s *Session) SetTemplate(tpl models.EmailTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tpl = tpl
}

// Template returns the current template.
func (s *Session) Template() models.EmailTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tpl
}

// Fields returns the placeholders detected in subject and body.
func (s *Session) Fields() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.fieldsLocked())
}

func (s *Session) fieldsLocked() []string {
	text := s.tpl.Text()
	if s.fields == nil || text != s.fieldsText {
		s.fields = placeholder.Detect(text)
		s.fieldsText = text
	}
	return s.fields
}

// Suggestions returns common field names missing from the template.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return placeholder.Suggestions(s.fieldsLocked())
}

// SetMapping assigns column to placeholder; an empty column removes it.
func (s *Session) SetMapping(field, column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mapping.Set(&s.mapping, field, column)
}

// ReplaceMapping replaces the whole mapping.
func (s *Session) ReplaceMapping(m models.FieldMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping = m.Clone()
}

// AutoMap recomputes the mapping from the detected fields and the data
// columns, discarding previous entries, and returns the result.
func (s *Session) AutoMap() models.FieldMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	var columns []string
	if s.data != nil {
		columns = s.data.Headers
	}
	s.mapping = mapping.AutoMap(s.fieldsLocked(), columns)
	return s.mapping.Clone()
}

// Mapping returns a copy of the current mapping.
func (s *Session) Mapping() models.FieldMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapping.Clone()
}

// MappedFields returns the detected fields with a column assigned.
func (s *Session) MappedFields() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapping.Mapped(s.fieldsLocked(), s.mapping)
}

// UnmappedFields returns the detected fields without a column.
func (s *Session) UnmappedFields() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapping.Unmapped(s.fieldsLocked(), s.mapping)
}

// ColumnPreview returns sample values of column from the first rows.
func (s *Session) ColumnPreview(column string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapping.Preview(s.data, column, mapping.DefaultPreviewSize)
}

// Emails returns the generated batch, reusing the previous result when
// data, template and mapping are unchanged.
func (s *Session) Emails() []models.GeneratedEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.emailsLocked())
}

func (s *Session) emailsLocked() []models.GeneratedEmail {
	key := s.fingerprintLocked()
	if s.emailsValid && key == s.emailsKey {
		metrics.GenerationCacheHits.Inc()
		return s.emails
	}

	s.emails = generator.Generate(s.data, s.tpl, s.mapping)
	s.emailsKey = key
	s.emailsValid = true

	stats := generator.Stats(s.emails)
	metrics.RecordGeneration(stats.WithRecipient, stats.WithoutRecipient)
	log.Debug("Generated emails", "total", stats.Total, "with_recipient", stats.WithRecipient)
	return s.emails
}

func (s *Session) fingerprintLocked() uint64 {
	d := xxhash.New()
	var gen [8]byte
	binary.LittleEndian.PutUint64(gen[:], s.dataGen)
	_, _ = d.Write(gen[:])
	writeField(d, s.tpl.Subject)
	writeField(d, s.tpl.Body)
	for _, e := range s.mapping.Entries() {
		writeField(d, e.Placeholder)
		writeField(d, e.Column)
	}
	return d.Sum64()
}

// writeField writes a length-prefixed string so adjacent fields cannot collide.
func writeField(d *xxhash.Digest, v string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(v)))
	_, _ = d.Write(n[:])
	_, _ = d.WriteString(v)
}

// Email returns the email with the given 1-based id.
func (s *Session) Email(id int) (models.GeneratedEmail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emails := s.emailsLocked()
	if id < 1 || id > len(emails) {
		return models.GeneratedEmail{}, false
	}
	return emails[id-1], true
}

// Page returns up to limit emails starting at offset, and the total count.
func (s *Session) Page(offset, limit int) ([]models.GeneratedEmail, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emails := s.emailsLocked()
	total := len(emails)
	offset = max(0, min(offset, total))
	end := total
	if limit > 0 {
		end = min(offset+limit, total)
	}
	return slices.Clone(emails[offset:end]), total
}

// Stats returns statistics of the generated batch.
func (s *Session) Stats() models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generator.Stats(s.emailsLocked())
}

// ExportText renders the generated batch as text.
func (s *Session) ExportText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generator.ToTextWidth(s.emailsLocked(), s.separatorWidth())
}

// ExportCSV renders the generated batch as CSV.
func (s *Session) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generator.ToCSV(s.emailsLocked())
}

// Export renders the generated batch in the named format (text, csv or json).
func (s *Session) Export(format string, pretty bool) (output.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := output.DefaultNames()
	if s.cfg.Export.TextFile != "" {
		names.Text = s.cfg.Export.TextFile
	}
	if s.cfg.Export.CSVFile != "" {
		names.CSV = s.cfg.Export.CSVFile
	}
	if s.cfg.Export.JSONFile != "" {
		names.JSON = s.cfg.Export.JSONFile
	}
	a, err := output.Build(format, s.emailsLocked(), names, s.separatorWidth(), pretty)
	if err != nil {
		return output.Artifact{}, err
	}
	metrics.RecordExport(format)
	return a, nil
}

func (s *Session) separatorWidth() int {
	if s.cfg.Export.SeparatorWidth > 0 {
		return s.cfg.Export.SeparatorWidth
	}
	return generator.SeparatorWidth
}
