package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/config"
	"github.com/mwootten/extractor/internal/home"
	"github.com/mwootten/extractor/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extractor server",
	Long: `Start the extractor HTTP server.

The server provides:
  - /         - Service information
  - /health   - Server health check
  - /schema   - JSON Schema for extraction requests
  - /extract  - Run an extraction (POST)

Provider API keys are read from the config file, with ${ENV_VAR}
references resolved from the environment. Config changes are hot-reloaded
while the server runs.

Examples:
  extractor serve                    # Start on default port 8080
  extractor serve --port 3000        # Start on custom port
  extractor serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config, preferring an explicit --config over the home file
		configPath := cfgFile
		if configPath == "" && h.ConfigExists() {
			configPath = h.ConfigPath()
		}
		cm, err := config.NewManager(configPath)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		host := serveHost
		port := servePort
		if !cmd.Flags().Changed("host") && cm.Get().Server.Host != "" {
			host = cm.Get().Server.Host
		}
		if !cmd.Flags().Changed("port") && cm.Get().Server.Port != "" {
			port = cm.Get().Server.Port
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: cm,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
