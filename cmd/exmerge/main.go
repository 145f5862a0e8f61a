// Package main provides the CLI entry point for exmerge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/config"
)

var (
	cfgFile string
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "exmerge",
	Short: "Generate personalized emails from a spreadsheet",
	Long: `exmerge fills an email template with the rows of a spreadsheet
(xlsx, xls or CSV) and exports the result as text, CSV or JSON.

Placeholders may be written as {{NAME}}, {NAME}, [NAME], <NAME> or NAME.

Example:
  exmerge detect --template plantilla.txt
  exmerge map datos.xlsx --template plantilla.txt --auto
  exmerge generate datos.xlsx --template plantilla.txt --auto --format csv -o correos.csv
  exmerge serve --addr :8080`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	log.SetOutput(os.Stderr)
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
	case verbose:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}

// loadConfig reads the configuration file. The configured log level applies
// unless --verbose or --debug was given.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if !debug && !verbose && cfg.Log.Level != "" {
		level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		log.SetLevel(level)
	}
	return cfg, nil
}
