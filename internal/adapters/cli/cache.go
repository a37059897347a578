package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/persistence"
	"github.com/andrescamacho/traveller-trade-go/internal/infrastructure/database"
)

// NewCacheCommand creates the cache command with subcommands
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached world data",
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached jump neighbourhood",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			repo, err := persistence.NewGormJumpWorldsRepository(db)
			if err != nil {
				return err
			}
			removed, err := repo.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached neighbourhoods\n", removed)
			return nil
		},
	}
}
