package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talenthq/onboarding-engine/internal/config"
	"github.com/talenthq/onboarding-engine/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the onboarding dialogue as REST endpoints: one session per candidate, reads for stage/draft/transcript, writes for every dialogue operation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if serveConfig != "" {
		loaded, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
