package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scout/internal/server"
	"scout/pkg/logging"
)

// toolsCmd lists the tools the current configuration would serve,
// without opening any backend connection.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the current configuration serves",
	Long: `Materializes the configured targets and prints the resulting tool
names with their descriptions. Materialization is side-effect free, so
this works without any backend being reachable.`,
	Args: cobra.NoArgs,
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	for _, def := range catalog.Table.Definitions() {
		fmt.Fprintf(out, "%s\n    %s\n", def.Name, def.Description)
	}
	fmt.Fprintf(out, "\n%d tools from %d providers\n",
		len(catalog.Table.Names()), len(catalog.Registry.Names()))
	return nil
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
