package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/server"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merge session API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	log.Info("Starting session API", "addr", cfg.Server.Addr, "max_upload_mb", cfg.Server.MaxUploadMB)
	return server.New(*cfg).Run(cmd.Context())
}
