// Package placeholder finds placeholder names in template text.
//
// Five syntaxes are recognized and their matches combined:
//
//	{{NAME}}  {NAME}  [NAME]  <NAME>  NAME
//
// The last form is any whole-word run of two or more upper-case ASCII
// letters or underscores. It also picks up acronyms written in the prose.
package placeholder

import (
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

// MinNameLength is the minimum number of runes of a placeholder name.
const MinNameLength = 2

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{([^}]+)\}\}`),
	regexp.MustCompile(`\{([^{}]+)\}`),
	regexp.MustCompile(`\[([^\[\]]+)\]`),
	regexp.MustCompile(`<([^<>]+)>`),
	regexp.MustCompile(`\b([A-Z_]{2,})\b`),
}

// commonFields are names offered to the author when missing from the template.
var commonFields = []string{
	"NOMBRE", "CEDULA", "CORREO", "EMAIL", "APELLIDO", "TELEFONO",
	"DIRECCION", "CIUDAD", "FECHA", "CURSO", "EMPRESA", "CARGO",
}

// Detect returns the distinct placeholder names referenced in text,
// upper-cased and sorted ascending.
func Detect(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := models.NormalizeName(m[1])
			if utf8.RuneCountInString(name) < MinNameLength {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for name := range seen {
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

// Suggestions returns the common field names not present in detected.
func Suggestions(detected []string) []string {
	var out []string
	for _, f := range commonFields {
		if !slices.Contains(detected, f) {
			out = append(out, f)
		}
	}
	return out
}

// Formats returns the ways field can be written in a template.
func Formats(field string) []string {
	return []string{
		"{{" + field + "}}",
		"{" + field + "}",
		"[" + field + "]",
		field,
	}
}
