package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"scout/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeUnhealthy indicates one or more targets failed their health check.
	ExitCodeUnhealthy = 2
)

// configPath specifies a custom configuration directory. When empty the
// per-user default is used.
var configPath string

// rootCmd represents the base command for the scout application.
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Serve observability tools for troubleshooting agents",
	Long: `scout turns the observability backends of a deployment (metrics,
logs, tickets, traces, key-value instances, cluster admin APIs) into a
catalog of uniformly named tools and serves them over MCP, so a
reasoning agent can investigate incidents through one interface.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the
// main package to inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "scout version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "",
		"Configuration directory containing config.yaml (default: ~/.config/scout)")
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfiguration resolves the configuration directory (--config-path
// or the per-user default) and loads the config file from it.
func loadConfiguration() (config.Config, error) {
	dir := configPath
	if dir == "" {
		var err error
		dir, err = config.GetDefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.LoadConfig(dir)
}
