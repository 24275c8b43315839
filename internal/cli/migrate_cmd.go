package cli

import (
	"fmt"

	"dadmind/internal/config"
	"dadmind/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations to the embedded session store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				if cfg.Store.Backend != config.StoreSQLite {
					return fmt.Errorf("store backend is %q; migrations only apply to %q", cfg.Store.Backend, config.StoreSQLite)
				}
				dbPath = cfg.Store.SQLitePath
			}

			db, err := sqlx.Open("sqlite", dbPath)
			if err != nil {
				return fmt.Errorf("opening sqlite database: %w", err)
			}
			defer db.Close()

			version, err := database.RunMigrations(db.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: schema at version %d\n", dbPath, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to store.sqlite_path)")
	return cmd
}
