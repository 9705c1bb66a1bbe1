package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/middleware"
)

// Scheduler drives the automation engine on a fixed interval. Ticks never
// overlap within one process: a tick runs to completion before the next
// interval is waited out. Cross-process overlap is handled by the guarded
// updates inside the scans themselves.
type Scheduler struct {
	interval   time.Duration
	automation portssvc.AutomationSvcFacade
	logger     *slog.Logger
}

// New creates a Scheduler that invokes the automation engine every interval.
func New(interval time.Duration, automation portssvc.AutomationSvcFacade, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval:   interval,
		automation: automation,
		logger:     logger,
	}
}

// Run ticks immediately, then on every interval until ctx is cancelled.
// It blocks; callers run it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Automation scheduler started", slog.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Automation scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	start := time.Now()
	tickLogger := s.logger.With(slog.String("tick_id", uuid.NewString()))
	tickCtx := middleware.WithLogger(ctx, tickLogger)

	result := s.automation.RunAll(tickCtx)

	tickLogger.Info("Automation tick completed",
		slog.Int("holds_expired", result.HoldsExpired),
		slog.Int("reminders_sent", result.RemindersSent),
		slog.Int("reminders_suppressed", result.RemindersSuppressed),
		slog.Int("waitlist_promoted", result.WaitlistPromoted),
		slog.Int("errors", result.Errors),
		slog.Duration("took", time.Since(start)),
	)
}
