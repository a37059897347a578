package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after defaults, config file and
environment variables are applied. Passwords are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asYAML {
				shown := *cfg
				shown.Database.Password = maskPassword(shown.Database.Password)
				shown.Database.URL = maskURL(shown.Database.URL)
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(shown)
			}

			fmt.Fprintln(out, "Current Configuration")
			fmt.Fprintln(out, "=====================")
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Database:")
			fmt.Fprintf(out, "  Type:     %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Fprintf(out, "  Path:     %s\n", cfg.Database.Path)
			} else if cfg.Database.URL != "" {
				fmt.Fprintf(out, "  URL:      %s\n", maskURL(cfg.Database.URL))
			} else {
				fmt.Fprintf(out, "  Host:     %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Fprintf(out, "  User:     %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Password: %s\n", maskPassword(cfg.Database.Password))
				fmt.Fprintf(out, "  Name:     %s\n", cfg.Database.Name)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Traveller Map:")
			fmt.Fprintf(out, "  Base URL:   %s\n", cfg.TravellerMap.BaseURL)
			fmt.Fprintf(out, "  Timeout:    %s\n", cfg.TravellerMap.Timeout)
			fmt.Fprintf(out, "  Rate Limit: %.1f req/s (burst %d)\n", cfg.TravellerMap.RateLimit, cfg.TravellerMap.Burst)
			fmt.Fprintf(out, "  Retries:    %d\n", cfg.TravellerMap.MaxRetries)
			fmt.Fprintf(out, "  Cache TTL:  %s\n", cfg.TravellerMap.CacheTTL)
			fmt.Fprintf(out, "  Offline:    %t\n", cfg.TravellerMap.Offline)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Rules:")
			fmt.Fprintf(out, "  Tables:  %s\n", orEmbedded(cfg.Rules.TablesPath))
			fmt.Fprintf(out, "  Catalog: %s\n", orEmbedded(cfg.Rules.CatalogPath))
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Packing:")
			fmt.Fprintf(out, "  Mode:    %s\n", cfg.Packing.Mode)
			if cfg.Packing.Mode == "grpc" {
				fmt.Fprintf(out, "  Address: %s\n", cfg.Packing.Address)
				fmt.Fprintf(out, "  Timeout: %s\n", cfg.Packing.Timeout)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Search:")
			fmt.Fprintf(out, "  Stale Limit:    %d\n", cfg.Search.StaleCompletionLimit)
			fmt.Fprintf(out, "  Cycle Window:   %d\n", cfg.Search.CycleWindow)
			fmt.Fprintf(out, "  Max Iterations: %s\n", unlimited(cfg.Search.MaxIterations))
			fmt.Fprintf(out, "  Timeout:        %s\n", cfg.Search.Timeout)
			fmt.Fprintf(out, "  Parallelism:    %d\n", cfg.Search.Parallelism)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Politics:")
			fmt.Fprintf(out, "  Home Worlds:   %s\n", strings.Join(cfg.Politics.HomeWorlds, ", "))
			fmt.Fprintf(out, "  Safe Worlds:   %s\n", strings.Join(cfg.Politics.SafeWorlds, ", "))
			fmt.Fprintf(out, "  Rival Zone A:  %s\n", strings.Join(cfg.Politics.RivalZoneA, ", "))
			fmt.Fprintf(out, "  Rival Zone B:  %s\n", strings.Join(cfg.Politics.RivalZoneB, ", "))
			fmt.Fprintf(out, "  Rival Penalty: %d\n", cfg.Politics.RivalPenalty)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Ships:")
			fmt.Fprintf(out, "  Default: %s\n", cfg.DefaultShip)
			fmt.Fprintf(out, "  Profiles: %s\n", strings.Join(sortedKeys(cfg.Ships), ", "))
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Logging:")
			fmt.Fprintf(out, "  Level:  %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output: %s\n", cfg.Logging.Output)
			if cfg.Logging.Output == "file" {
				fmt.Fprintf(out, "  File:   %s\n", cfg.Logging.FilePath)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Metrics:")
			fmt.Fprintf(out, "  Enabled:   %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Namespace: %s\n", cfg.Metrics.Namespace)
				fmt.Fprintf(out, "  Textfile:  %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	return cmd
}

func maskPassword(password string) string {
	if password == "" {
		return "(not set)"
	}
	return "********"
}

// maskURL hides the password in a postgres connection URL
func maskURL(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if scheme < 0 || at < scheme {
		return url
	}
	creds := url[scheme+3 : at]
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return url
	}
	return url[:scheme+3] + user + ":********" + url[at:]
}

func orEmbedded(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

func unlimited(n int) string {
	if n == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}
