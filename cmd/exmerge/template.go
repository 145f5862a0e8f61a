package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/config"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
)

var (
	templatePath string
	subjectText  string
	bodyText     string
)

// readTemplate resolves the template from --template, --body and --subject.
// A .yaml or .yml template file holds subject and body keys; any other file
// is the body. --subject and --body override what the file provides and the
// configured template fills the rest.
func readTemplate(cfg *config.Config) (models.EmailTemplate, error) {
	tpl := models.EmailTemplate{Subject: cfg.Template.Subject, Body: cfg.Template.Body}

	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return tpl, fmt.Errorf("failed to read template: %w", err)
		}
		switch strings.ToLower(filepath.Ext(templatePath)) {
		case ".yaml", ".yml":
			var file config.TemplateConfig
			if err := yaml.Unmarshal(data, &file); err != nil {
				return tpl, fmt.Errorf("failed to parse template: %w", err)
			}
			tpl.Subject = file.Subject
			tpl.Body = file.Body
		default:
			tpl.Body = string(data)
		}
	}
	if bodyText != "" {
		tpl.Body = bodyText
	}
	if subjectText != "" {
		tpl.Subject = subjectText
	}
	return tpl, nil
}

func addTemplateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&templatePath, "template", "", "template file (body text, or YAML with subject and body)")
	flags.StringVar(&subjectText, "subject", "", "subject template")
	flags.StringVar(&bodyText, "body", "", "body template")
}
