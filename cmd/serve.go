package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tablewise/table_reservation_app/internal/core/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/handlers"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/internal/platform/scheduler"
	"github.com/tablewise/table_reservation_app/internal/repositories/database/pgsql"
	"github.com/tablewise/table_reservation_app/pkg/clock"
	"github.com/tablewise/table_reservation_app/pkg/config"
	"github.com/tablewise/table_reservation_app/pkg/database"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the automation scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not run database migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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
	logger.Info("Database connection pool established")

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
		logger.Info("Database migrations applied")
	}

	repos := pgsql.NewRepositoryProvider(pool)
	container := services.NewServiceContainer(repos, services.ContainerConfig{
		JWTSecret:          cfg.JWTSecret,
		JWTExpiryDuration:  cfg.JWTExpiryDuration,
		JWTIssuer:          cfg.JWTIssuer,
		BookingTokenSecret: cfg.BookingTokenSecret,
	}, clock.NewReal())

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	dto.RegisterCustomValidations()
	handlers.RegisterRoutes(r, cfg, container)

	// The scheduler shares the server's context: SIGTERM stops both.
	sched := scheduler.New(cfg.AutomationTickInterval, container.Automation, logger)
	go sched.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
