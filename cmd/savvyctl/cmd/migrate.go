package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"savvy/internal/infra/persistence/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Schema is up to date", "driver", cfg.Database.Driver)

		return nil
	},
}
