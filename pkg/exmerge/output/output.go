// Package output serializes generated batches and delivers export files.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/generator"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

// ErrInvalidFormat indicates an unknown export format.
var ErrInvalidFormat = errors.New("invalid format")

// Media types of export artifacts.
const (
	MediaTypeText = "text/plain"
	MediaTypeCSV  = "text/csv"
	MediaTypeJSON = "application/json"
)

// Export format names.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Artifact is an export ready to be downloaded.
type Artifact struct {
	Content   []byte
	Filename  string
	MediaType string
}

// Names holds the file names used for each export format.
type Names struct {
	Text string
	CSV  string
	JSON string
}

// DefaultNames returns the default export file names.
func DefaultNames() Names {
	return Names{Text: "correos.txt", CSV: "correos.csv", JSON: "correos.json"}
}

// Batch is the JSON form of a generated batch.
type Batch struct {
	Statistics models.Statistics       `json:"statistics"`
	Emails     []models.GeneratedEmail `json:"emails"`
}

// ToJSON serializes v as JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TextArtifact renders emails as a text export with the given separator width.
func TextArtifact(emails []models.GeneratedEmail, name string, width int) Artifact {
	if width <= 0 {
		width = generator.SeparatorWidth
	}
	return Artifact{
		Content:   []byte(generator.ToTextWidth(emails, width)),
		Filename:  name,
		MediaType: MediaTypeText,
	}
}

// CSVArtifact renders emails as a CSV export.
func CSVArtifact(emails []models.GeneratedEmail, name string) Artifact {
	return Artifact{
		Content:   []byte(generator.ToCSV(emails)),
		Filename:  name,
		MediaType: MediaTypeCSV,
	}
}

// JSONArtifact renders emails and their statistics as JSON.
func JSONArtifact(emails []models.GeneratedEmail, name string, pretty bool) (Artifact, error) {
	data, err := ToJSON(Batch{Statistics: generator.Stats(emails), Emails: emails}, pretty)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Content: data, Filename: name, MediaType: MediaTypeJSON}, nil
}

// Build renders emails in the named format.
func Build(format string, emails []models.GeneratedEmail, names Names, width int, pretty bool) (Artifact, error) {
	switch format {
	case FormatText, "txt":
		return TextArtifact(emails, names.Text, width), nil
	case FormatCSV:
		return CSVArtifact(emails, names.CSV), nil
	case FormatJSON:
		return JSONArtifact(emails, names.JSON, pretty)
	}
	return Artifact{}, fmt.Errorf("%w: %s (must be text, csv, or json)", ErrInvalidFormat, format)
}

// Sink delivers artifacts to the user.
type Sink interface {
	Deliver(a Artifact) error
}

// DirSink writes artifacts as files under Dir.
type DirSink struct {
	Dir string
}

// Deliver writes the artifact to Dir/Filename.
func (s DirSink) Deliver(a Artifact) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return NewCapabilityError("download", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Content, 0644); err != nil {
		return NewCapabilityError("download", err)
	}
	return nil
}

// FileSink writes every artifact to Path regardless of its file name.
type FileSink struct {
	Path string
}

// Deliver writes the artifact to Path.
func (s FileSink) Deliver(a Artifact) error {
	if err := os.WriteFile(s.Path, a.Content, 0644); err != nil {
		return NewCapabilityError("download", err)
	}
	return nil
}

// WriterSink copies artifact content to W, the way a clipboard write would.
type WriterSink struct {
	W io.Writer
}

// Deliver writes the artifact content followed by a newline.
func (s WriterSink) Deliver(a Artifact) error {
	if _, err := s.W.Write(a.Content); err != nil {
		return NewCapabilityError("copy", err)
	}
	if _, err := io.WriteString(s.W, "\n"); err != nil {
		return NewCapabilityError("copy", err)
	}
	return nil
}

// CapabilityError reports a failed delivery. The action can be retried.
type CapabilityError struct {
	Action string
	Err    error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// NewCapabilityError creates a new CapabilityError.
func NewCapabilityError(action string, err error) *CapabilityError {
	return &CapabilityError{Action: action, Err: err}
}
