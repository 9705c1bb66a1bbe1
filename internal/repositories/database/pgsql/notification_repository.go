package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, org_id, branch_id, reservation_id, waitlist_id, type, event, to_address, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID, notification.OrgID, notification.BranchID,
		notification.ReservationID, notification.WaitlistID, notification.Type,
		notification.Event, notification.ToAddress, notification.Payload,
		notification.Status, notification.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+notification.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) HasRecentNotification(ctx context.Context, orgID string, reservationID string, event string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE org_id = $1 AND reservation_id = $2 AND event = $3 AND created_at >= $4
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, orgID, reservationID, event, since).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check recent notifications", err)
	}
	return exists, nil
}
