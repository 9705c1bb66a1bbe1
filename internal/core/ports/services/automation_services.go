package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/dto"
)

// AutomationSvcFacade is the periodic automation engine. Every scan is
// idempotent against re-invocation: acting on an item removes it from the
// next scan's selection set, and per-item failures are logged without
// aborting the batch.
type AutomationSvcFacade interface {
	// RunAll executes every scan once (one tick).
	RunAll(ctx context.Context) *dto.TickResult

	// RunHoldExpiry cancels HELD reservations whose autoCancelAt has passed,
	// settling their deposits. Returns (expired, failures).
	RunHoldExpiry(ctx context.Context) (int, int)

	// RunReminders fires due reminders, suppressing stale and duplicate ones.
	// Returns (sent, suppressed, failures).
	RunReminders(ctx context.Context) (int, int, int)

	// RunWaitlistPromotion attempts promotion for every branch with a
	// non-empty waitlist. Returns (promoted, failures).
	RunWaitlistPromotion(ctx context.Context) (int, int)

	// GetAutomationLogs reads the append-only audit trail.
	GetAutomationLogs(ctx context.Context, orgID string, params dto.ListLogsParams) (*dto.ListLogsResponse, error)
}
