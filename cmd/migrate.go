package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tablewise/table_reservation_app/pkg/config"
	"github.com/tablewise/table_reservation_app/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("Failed to load config", slog.String("error", err.Error()))
			return err
		}

		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}

		logger.Info("Database migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
