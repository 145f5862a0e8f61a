package generator

import (
	"strconv"
	"strings"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

// SeparatorWidth is the width of the rule framing each email in text exports.
const SeparatorWidth = 80

// NoRecipient is printed in place of a blank or whitespace-only recipient.
const NoRecipient = "Sin destinatario"

var csvHeader = []string{"ID", "Destinatario", "Asunto", "Cuerpo"}

// ToText renders emails as framed blocks separated by a blank line.
func ToText(emails []models.GeneratedEmail) string {
	return ToTextWidth(emails, SeparatorWidth)
}

// ToTextWidth is ToText with a custom separator width.
func ToTextWidth(emails []models.GeneratedEmail, width int) string {
	sep := strings.Repeat("=", width)
	blocks := make([]string, 0, len(emails))
	for _, e := range emails {
		var b strings.Builder
		b.WriteString(sep)
		b.WriteString("\nCORREO #")
		b.WriteString(strconv.Itoa(e.ID))
		b.WriteString("\nPara: ")
		b.WriteString(recipientOrDefault(e.Recipient))
		b.WriteString("\nAsunto: ")
		b.WriteString(e.Subject)
		b.WriteString("\n\n")
		b.WriteString(e.Body)
		b.WriteString("\n")
		b.WriteString(sep)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// ToCSV renders emails as CSV. The id is written bare and the other
// fields are always quoted.
func ToCSV(emails []models.GeneratedEmail) string {
	lines := make([]string, 0, len(emails)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, e := range emails {
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(e.ID),
			quote(e.Recipient),
			quote(e.Subject),
			quote(e.Body),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// ClipboardText renders a single email for pasting into a mail client.
func ClipboardText(e models.GeneratedEmail) string {
	return "Para: " + recipientOrDefault(e.Recipient) + "\nAsunto: " + e.Subject + "\n\n" + e.Body
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func recipientOrDefault(r string) string {
	if strings.TrimSpace(r) == "" {
		return NoRecipient
	}
	return r
}
