package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// notificationService is the log-and-mark-sent notification sink. There is no
// real delivery channel behind it: a notification is "sent" once it is logged
// and its row is persisted with status SENT.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	clk              clock.Clock
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, clk clock.Clock) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo, clk: clk}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Send(ctx context.Context, input dto.SendNotificationInput) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notifType := domain.NotificationType(input.Type)
	if notifType == "" {
		notifType = domain.NotificationLog
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		OrgID:          input.OrgID,
		BranchID:       input.BranchID,
		ReservationID:  input.ReservationID,
		WaitlistID:     input.WaitlistID,
		Type:           notifType,
		Event:          input.Event,
		ToAddress:      input.ToAddress,
		Payload:        input.Payload,
		Status:         domain.NotificationSent,
		CreatedAt:      s.clk.Now(),
	}

	logger.Info("Notification dispatched",
		"notification_id", notification.NotificationID,
		"event", notification.Event,
		"type", notification.Type,
	)

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return "", fmt.Errorf("recording notification: %w", err)
	}
	return notification.NotificationID, nil
}
