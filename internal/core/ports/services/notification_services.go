package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/dto"
)

// NotificationSvcFacade is the log-and-mark-sent notification sink. Send is
// synchronous but fire-and-forget: its failures must never roll back the
// reservation or ledger transaction that produced the event.
type NotificationSvcFacade interface {
	Send(ctx context.Context, input dto.SendNotificationInput) (string, error)
}
