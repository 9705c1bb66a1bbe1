package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxReminderRepository struct {
	BaseRepository
}

func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

func (r *PgxReminderRepository) SaveReminder(ctx context.Context, reminder domain.ReservationReminder) error {
	query := `
		INSERT INTO reservation_reminders (reminder_id, org_id, branch_id, reservation_id, scheduled_at, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		reminder.ReminderID, reminder.OrgID, reminder.BranchID, reminder.ReservationID,
		reminder.ScheduledAt, reminder.SentAt, reminder.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert reminder "+reminder.ReminderID, err)
	}
	return nil
}

func (r *PgxReminderRepository) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.ReservationReminder, error) {
	// Sent reminders drop out of the selection, which is what makes the
	// reminder scan idempotent.
	query := `
		SELECT reminder_id, org_id, branch_id, reservation_id, scheduled_at, sent_at, created_at
		FROM reservation_reminders
		WHERE sent_at IS NULL AND scheduled_at <= $1
		ORDER BY scheduled_at
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query due reminders", err)
	}
	defer rows.Close()

	var reminders []domain.ReservationReminder
	for rows.Next() {
		var rem domain.ReservationReminder
		if err := rows.Scan(
			&rem.ReminderID, &rem.OrgID, &rem.BranchID, &rem.ReservationID,
			&rem.ScheduledAt, &rem.SentAt, &rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time) error {
	query := `UPDATE reservation_reminders SET sent_at = $1 WHERE reminder_id = $2 AND sent_at IS NULL;`
	tag, err := r.Pool.Exec(ctx, query, sentAt, reminderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark reminder sent "+reminderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
