package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tablewise/table_reservation_app/internal/core/services"
	"github.com/tablewise/table_reservation_app/internal/repositories/database/pgsql"
	"github.com/tablewise/table_reservation_app/pkg/clock"
	"github.com/tablewise/table_reservation_app/pkg/config"
	"github.com/tablewise/table_reservation_app/pkg/database"
)

// tickCmd runs one automation pass and exits. Useful for cron-style
// deployments where the in-process scheduler is disabled, and for debugging
// a stuck scan against a live database.
var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one automation pass (hold expiry, reminders, promotion) and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("Failed to load config", slog.String("error", err.Error()))
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			return err
		}
		defer pool.Close()

		repos := pgsql.NewRepositoryProvider(pool)
		container := services.NewServiceContainer(repos, services.ContainerConfig{
			JWTSecret:          cfg.JWTSecret,
			JWTExpiryDuration:  cfg.JWTExpiryDuration,
			JWTIssuer:          cfg.JWTIssuer,
			BookingTokenSecret: cfg.BookingTokenSecret,
		}, clock.NewReal())

		result := container.Automation.RunAll(ctx)
		logger.Info("Automation tick completed",
			slog.Int("holds_expired", result.HoldsExpired),
			slog.Int("reminders_sent", result.RemindersSent),
			slog.Int("reminders_suppressed", result.RemindersSuppressed),
			slog.Int("waitlist_promoted", result.WaitlistPromoted),
			slog.Int("errors", result.Errors),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tickCmd)
}
