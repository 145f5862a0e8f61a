package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/placeholder"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List the placeholders used by a template",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List common fields the template does not use yet",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func init() {
	addTemplateFlags(detectCmd)
	addTemplateFlags(suggestCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tpl, err := readTemplate(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fields := placeholder.Detect(tpl.Text())
	if len(fields) == 0 {
		fmt.Fprintln(out, "No fields detected")
	} else {
		fmt.Fprintf(out, "Detected fields (%d):\n", len(fields))
		for _, f := range fields {
			fmt.Fprintf(out, "  %-20s %s\n", f, strings.Join(placeholder.Formats(f), "  "))
		}
	}

	if suggestions := placeholder.Suggestions(fields); len(suggestions) > 0 {
		fmt.Fprintf(out, "Suggestions: %s\n", strings.Join(suggestions, ", "))
	}
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tpl, err := readTemplate(cfg)
	if err != nil {
		return err
	}
	for _, s := range placeholder.Suggestions(placeholder.Detect(tpl.Text())) {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}
