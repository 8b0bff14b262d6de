package cmd

import (
	"fmt"

	"github.com/cluelogs/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	downSteps      int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply pending database migrations, or roll back with --down.

Examples:
  # Apply all pending migrations
  server migrate

  # Roll back the last migration
  server migrate --down 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		if downSteps > 0 {
			return postgres.MigrateDown(cfg.Database.URL, migrationsPath, downSteps)
		}
		return postgres.MigrateUp(cfg.Database.URL, migrationsPath)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "", "migrations directory (default: "+postgres.DefaultMigrationsPath+")")
	migrateCmd.Flags().IntVar(&downSteps, "down", 0, "roll back this many migrations instead of applying")
}
