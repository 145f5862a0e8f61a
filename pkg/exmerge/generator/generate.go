// Package generator produces personalized emails from tabular data.
package generator

import (
	"regexp"
	"strings"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

// recipientHints are matched against lower-cased headers to find the address column.
var recipientHints = []string{"email", "correo", "mail"}

// Generate builds one email per data row. It returns an empty slice when
// data is nil or the template body is blank.
func Generate(data *models.TabularData, tpl models.EmailTemplate, m models.FieldMapping) []models.GeneratedEmail {
	if data == nil || tpl.IsBlank() {
		return []models.GeneratedEmail{}
	}

	r := NewReplacer(m)
	recipientCol, hasRecipient := RecipientColumn(data.Headers)

	emails := make([]models.GeneratedEmail, 0, len(data.Rows))
	for i := range data.Rows {
		rowData := data.RowData(i)

		recipient := ""
		if hasRecipient {
			recipient = rowData[recipientCol]
		}

		emails = append(emails, models.GeneratedEmail{
			ID:        i + 1,
			Recipient: recipient,
			Subject:   r.Replace(tpl.Subject, rowData),
			Body:      r.Replace(tpl.Body, rowData),
			RowData:   rowData,
		})
	}
	return emails
}

// RecipientColumn returns the first header that looks like an email column.
func RecipientColumn(headers []string) (string, bool) {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, hint := range recipientHints {
			if strings.Contains(lower, hint) {
				return h, true
			}
		}
	}
	return "", false
}

// Stats counts the emails with and without a recipient.
func Stats(emails []models.GeneratedEmail) models.Statistics {
	s := models.Statistics{Total: len(emails)}
	for _, e := range emails {
		if strings.TrimSpace(e.Recipient) != "" {
			s.WithRecipient++
		}
	}
	s.WithoutRecipient = s.Total - s.WithRecipient
	s.IsEmpty = s.Total == 0
	return s
}

// Replacer substitutes mapped placeholders in template text.
// Entries are applied in mapping order, so when one placeholder name
// occurs inside another the earlier entry rewrites it first.
type Replacer struct {
	rules []rule
}

type rule struct {
	column   string
	patterns []*regexp.Regexp
}

// NewReplacer compiles the substitution patterns for m.
func NewReplacer(m models.FieldMapping) *Replacer {
	r := &Replacer{}
	for _, e := range m.Entries() {
		r.rules = append(r.rules, rule{column: e.Column, patterns: compile(e.Placeholder)})
	}
	return r
}

func compile(placeholder string) []*regexp.Regexp {
	q := regexp.QuoteMeta(placeholder)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)\{\{` + q + `\}\}`),
		regexp.MustCompile(`(?i)\{` + q + `\}`),
		regexp.MustCompile(`(?i)\[` + q + `\]`),
		regexp.MustCompile(`(?i)<` + q + `>`),
		regexp.MustCompile(`(?i)\b` + q + `\b`),
	}
}

// Replace returns text with every mapped placeholder replaced by the
// row value of its column. Missing columns substitute the empty string.
func (r *Replacer) Replace(text string, rowData map[string]string) string {
	for _, rl := range r.rules {
		value := rowData[rl.column]
		for _, re := range rl.patterns {
			text = re.ReplaceAllLiteralString(text, value)
		}
	}
	return text
}
