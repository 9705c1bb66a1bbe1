package repositories

import (
	"context"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence for the notification sink.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// HasRecentNotification reports whether a notification for the same
	// reservation and event was recorded at or after `since`. Used as the
	// short-window duplicate guard against overlapping automation ticks.
	HasRecentNotification(ctx context.Context, orgID string, reservationID string, event string, since time.Time) (bool, error)
}
