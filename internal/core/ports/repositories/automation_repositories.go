package repositories

import (
	"context"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// ListLogsFilter narrows an automation-log query. Nil fields are ignored.
type ListLogsFilter struct {
	BranchID   *string
	EntityType *string
	EntityID   *string
	Action     *string
	From       *time.Time
	To         *time.Time
}

// AutomationLogRepositoryFacade defines persistence for the append-only audit
// trail. Logs are write-once; there is no update or delete.
type AutomationLogRepositoryFacade interface {
	SaveLog(ctx context.Context, log domain.AutomationLog) error
	ListLogs(ctx context.Context, orgID string, filter ListLogsFilter, limit int, nextToken *string) ([]domain.AutomationLog, *string, error)
}

// ReminderRepositoryFacade defines persistence for scheduled reminders.
type ReminderRepositoryFacade interface {
	SaveReminder(ctx context.Context, reminder domain.ReservationReminder) error

	// ListDueReminders selects reminders with scheduledAt <= now and
	// sentAt IS NULL, oldest first.
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.ReservationReminder, error)

	// MarkReminderSent stamps sentAt iff it is still NULL; ErrConflict when a
	// concurrent tick already marked it.
	MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time) error
}
