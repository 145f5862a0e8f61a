package session

import (
	"slices"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/generator"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/mapping"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/placeholder"
)

// Summary is a point-in-time view of a session.
type Summary struct {
	Step        Step                 `json:"step"`
	Steps       []StepInfo           `json:"steps"`
	Source      string               `json:"source,omitempty"`
	Sheet       string               `json:"sheet,omitempty"`
	Headers     []string             `json:"headers"`
	RowCount    int                  `json:"row_count"`
	Loading     bool                 `json:"loading"`
	Progress    int                  `json:"progress"`
	Error       string               `json:"error,omitempty"`
	Template    models.EmailTemplate `json:"template"`
	Mapping     models.FieldMapping  `json:"mapping"`
	Fields      []string             `json:"fields"`
	Mapped      []string             `json:"mapped"`
	Unmapped    []string             `json:"unmapped"`
	Suggestions []string             `json:"suggestions"`
	Recipient   string               `json:"recipient_column,omitempty"`
	Statistics  models.Statistics    `json:"statistics"`
}

// Summary returns the current state of the session.
func (s *Session) Summary() Summary {
	steps := s.Steps()

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.fieldsLocked()
	sum := Summary{
		Step:        s.step,
		Steps:       steps,
		Headers:     []string{},
		Loading:     s.loading,
		Progress:    s.progress,
		Template:    s.tpl,
		Mapping:     s.mapping.Clone(),
		Fields:      slices.Clone(fields),
		Mapped:      mapping.Mapped(fields, s.mapping),
		Unmapped:    mapping.Unmapped(fields, s.mapping),
		Suggestions: placeholder.Suggestions(fields),
		Statistics:  generator.Stats(s.emailsLocked()),
	}
	if s.lastErr != nil {
		sum.Error = s.lastErr.Error()
	}
	if s.data != nil {
		sum.Source = s.data.SourceName
		sum.Sheet = s.data.Sheet
		sum.Headers = s.data.Headers
		sum.RowCount = len(s.data.Rows)
		sum.Recipient, _ = generator.RecipientColumn(s.data.Headers)
	}
	return sum
}
