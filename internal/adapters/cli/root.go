package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	offline    bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tradeplanner",
		Short: "Traveller trade route planner",
		Long: `Plans profitable trade routes between Traveller worlds.

World data comes from the Traveller Map service and is cached in a local
database. Each leg of a voyage is searched best-first for the highest net
profit per week, trading speculative cargo, freight and passengers.

Examples:
  tradeplanner plan --ship perfect-stranger --start "Reft 2225" --stop "Reft 2325" --stop "Reft 1426" --capital 47950
  tradeplanner plan --start "Reft 2225" --capital 47950 --max-weeks 12
  tradeplanner quote --from "Reft 2225" --to "Reft 2325" --capital 47950
  tradeplanner world "Reft 2225"
  tradeplanner ships
  tradeplanner config show
  tradeplanner cache clear`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./config, ~/.tradeplanner)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false,
		"Use cached world data only, never call the map service")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewQuoteCommand())
	rootCmd.AddCommand(NewWorldCommand())
	rootCmd.AddCommand(NewShipsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCacheCommand())

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
