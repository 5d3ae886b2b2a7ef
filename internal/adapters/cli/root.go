package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverAddr string
	kingdomID  int
	configPath string
	verbose    bool
)

// noKingdom marks --kingdom as not given; kingdom 0 is a valid id
const noKingdom = -1

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "domnus",
		Short: "Domnus CLI - Inspect and run a kingdom's economy",
		Long: `Domnus CLI talks to the economy service over gRPC.
It shows production overviews, places orders and manages projects and spending.

Examples:
  domnus overview settle --kingdom 7
  domnus order settle --amount 150
  domnus order specialists attack=10 defense=5 --request-id retry-safe-1
  domnus projects assign pop_bonus=4 fuel_bonus=2
  domnus spending set --settle 25 --military 50
  domnus catalog units
  domnus logs --kingdom 7 --level ERROR`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "",
		"Economy service address (defaults to user config, then server.address)")
	rootCmd.PersistentFlags().IntVarP(&kingdomID, "kingdom", "k", noKingdom,
		"Kingdom ID (defaults to the one set with 'domnus config set-kingdom')")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (searched in ., ./configs and /etc/domnus when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewOverviewCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewProjectsCommand())
	rootCmd.AddCommand(NewSpendingCommand())
	rootCmd.AddCommand(NewTimeCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewKingdomCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
