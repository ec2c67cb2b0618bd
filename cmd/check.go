package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"scout/internal/capability"
	"scout/internal/server"
	"scout/pkg/logging"
)

// checkTimeout bounds the whole health check run.
var checkTimeout time.Duration

// checkCmd probes every configured target and reports its health.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the health of every configured target",
	Long: `Materializes the configured targets and runs all health checks
concurrently. Exits non-zero when any target is unhealthy, which makes
the command usable as a deployment probe.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	logging.Init(logging.LevelWarn, os.Stderr)

	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	catalog, err := server.BuildCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to build tool catalog: %w", err)
	}
	defer catalog.Registry.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	results := catalog.Registry.CheckHealthAll(ctx)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	unhealthy := 0
	for _, name := range names {
		status := results[name]
		switch status.Status {
		case capability.StatusOK:
			if status.Detail != "" {
				fmt.Fprintf(out, "ok    %s (%s)\n", name, status.Detail)
			} else {
				fmt.Fprintf(out, "ok    %s\n", name)
			}
		default:
			unhealthy++
			fmt.Fprintf(out, "FAIL  %s: %s\n", name, status.Error)
		}
	}

	if unhealthy > 0 {
		fmt.Fprintf(out, "\n%d of %d targets unhealthy\n", unhealthy, len(results))
		os.Exit(ExitCodeUnhealthy)
	}
	fmt.Fprintf(out, "\nall %d targets healthy\n", len(results))
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second,
		"Overall timeout for the health check run")
}
