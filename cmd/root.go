package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablewise",
	Short: "Multi-tenant restaurant table reservation backend",
	Long: `Tablewise runs the reservation API, the deposit ledger and the
background automation engine (hold expiry, reminders, waitlist promotion).`,
}

// Execute runs the CLI. It is the only entrypoint main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process-wide JSON logger and installs it as the slog
// default.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}
