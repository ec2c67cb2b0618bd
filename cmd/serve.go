package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scout/internal/server"
	"scout/pkg/logging"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveCmd starts the tool server: it materializes tools for every
// configured target and serves them over the configured MCP transport
// until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scout tool server",
	Long: `Starts the scout tool server. Every target declared in the
configuration is materialized into uniquely named tools, and the
resulting catalog is served over the configured MCP transport
(streamable-http or stdio) until the process is interrupted.

No backend connections are opened at startup: each tool dials its
backend lazily on first invocation.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveDebug {
		level = logging.LevelDebug
	}
	// Logs go to stderr so the stdio transport keeps stdout clean.
	logging.Init(level, os.Stderr)

	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	catalog, err := server.BuildCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to build tool catalog: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, catalog)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-ctx.Done()
	return srv.Stop(context.Background())
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
