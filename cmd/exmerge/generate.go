package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/generator"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/output"
)

var (
	format     string
	outputPath string
	outDir     string
	pretty     bool
	emailID    int
)

var generateCmd = &cobra.Command{
	Use:   "generate [data-file]",
	Short: "Generate one email per spreadsheet row",
	Long: `Generate fills the template with every data row and exports the batch.

Statistics are printed to stderr. Without --output or --out-dir the export
is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	addTemplateFlags(generateCmd)
	addMappingFlags(generateCmd)
	generateCmd.Flags().StringVar(&format, "format", output.FormatText, "export format: text, csv, or json")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	generateCmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the export file, named after the configured file name")
	generateCmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	generateCmd.Flags().IntVar(&emailID, "email", 0, "print only the email with this id, ready to paste")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if outputPath != "" && outDir != "" {
		return fmt.Errorf("--output and --out-dir are mutually exclusive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := prepareSession(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}
	if unmapped := sess.UnmappedFields(); len(unmapped) > 0 {
		log.Warn("Fields without a column are left as written", "fields", unmapped)
	}

	stats := sess.Stats()
	fmt.Fprintf(cmd.ErrOrStderr(), "Total: %d  With recipient: %d  Without recipient: %d\n",
		stats.Total, stats.WithRecipient, stats.WithoutRecipient)

	if emailID > 0 {
		email, ok := sess.Email(emailID)
		if !ok {
			return fmt.Errorf("email %d not found (total %d)", emailID, stats.Total)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), generator.ClipboardText(email))
		return err
	}

	artifact, err := sess.Export(format, pretty)
	if err != nil {
		return err
	}

	var sink output.Sink
	switch {
	case outputPath != "":
		sink = output.FileSink{Path: outputPath}
	case outDir != "":
		sink = output.DirSink{Dir: outDir}
	default:
		sink = output.WriterSink{W: cmd.OutOrStdout()}
	}
	if err := sink.Deliver(artifact); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("Export written", "format", format, "emails", stats.Total)
	return nil
}
