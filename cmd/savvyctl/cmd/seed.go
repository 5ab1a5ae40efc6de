package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"savvy/internal/infra/auth"
	"savvy/internal/infra/persistence/database"
	"savvy/internal/infra/persistence/seed"
)

var seedMigrate bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert default categories and a demo admin account",
	Long: `Inserts the default public categories when none exist, creates the
admin@admin.org account if missing and gives it a batch of random records.
Running it twice adds another batch of records and nothing else.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := cmd.Context()
		if seedMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}

		seeder := seed.NewSeeder(
			database.NewUserRepository(db),
			database.NewCategoryRepository(db),
			database.NewRecordRepository(db),
			auth.NewArgon2Hasher(cfg, logger),
			logger,
		)
		if err := seeder.Run(ctx); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}

		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Migrate the schema before seeding")
}
