package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmerge-go/pkg/exmerge"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/config"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/session"
)

var (
	mapFlags    []string
	autoMap     bool
	inputFormat string
)

var mapCmd = &cobra.Command{
	Use:   "map [data-file]",
	Short: "Resolve template fields to spreadsheet columns",
	Args:  cobra.ExactArgs(1),
	RunE:  runMap,
}

func init() {
	addTemplateFlags(mapCmd)
	addMappingFlags(mapCmd)
}

func addMappingFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&mapFlags, "map", nil, "map a field to a column as FIELD=COLUMN (repeatable)")
	cmd.Flags().BoolVar(&autoMap, "auto", false, "map fields to columns with matching names")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: auto, xlsx, xls, or csv (overrides ingest.format)")
}

// parseMapFlags splits FIELD=COLUMN pairs. An empty column unmaps the field.
func parseMapFlags(values []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(values))
	for _, v := range values {
		field, column, ok := strings.Cut(v, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid mapping %q (expected FIELD=COLUMN)", v)
		}
		pairs = append(pairs, [2]string{field, column})
	}
	return pairs, nil
}

// prepareSession loads the data file and applies template and mapping flags.
func prepareSession(ctx context.Context, cfg *config.Config, dataPath string) (*session.Session, error) {
	pairs, err := parseMapFlags(mapFlags)
	if err != nil {
		return nil, err
	}
	tpl, err := readTemplate(cfg)
	if err != nil {
		return nil, err
	}

	if inputFormat != "" {
		if _, ok := exmerge.ParseFormat(inputFormat); !ok {
			return nil, fmt.Errorf("invalid input format: %s (must be auto, xlsx, xls, or csv)", inputFormat)
		}
		cfg.Ingest.Format = inputFormat
	}

	sess := session.New(*cfg)
	if err := sess.Load(ctx, dataPath); err != nil {
		return nil, err
	}
	sess.SetTemplate(tpl)
	if autoMap {
		sess.AutoMap()
	}
	for _, p := range pairs {
		sess.SetMapping(p[0], p[1])
	}
	return sess, nil
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := prepareSession(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	data := sess.Data()
	fmt.Fprintf(out, "Columns: %s\n", strings.Join(data.Headers, ", "))
	fmt.Fprintf(out, "Rows: %d\n\n", len(data.Rows))

	entries := sess.Mapping().Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No fields mapped")
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-20s -> %-20s %s\n", e.Placeholder, e.Column, strings.Join(sess.ColumnPreview(e.Column), ", "))
	}

	if unmapped := sess.UnmappedFields(); len(unmapped) > 0 {
		fmt.Fprintf(out, "\nUnmapped fields: %s\n", strings.Join(unmapped, ", "))
	}
	return nil
}
