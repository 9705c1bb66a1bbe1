package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

type PgxReservationRepository struct {
	BaseRepository
}

func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

const reservationColumns = `reservation_id, org_id, branch_id, table_id, guest_name, guest_phone, party_size, start_at, end_at, status, deposit_status, auto_cancel_at, cancellation_reason, order_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var r domain.Reservation
	err := row.Scan(
		&r.ReservationID, &r.OrgID, &r.BranchID, &r.TableID, &r.GuestName, &r.GuestPhone,
		&r.PartySize, &r.StartAt, &r.EndAt, &r.Status, &r.DepositStatus, &r.AutoCancelAt,
		&r.CancellationReason, &r.OrderID, &r.Notes,
		&r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		reservation.ReservationID, reservation.OrgID, reservation.BranchID, reservation.TableID,
		reservation.GuestName, reservation.GuestPhone, reservation.PartySize,
		reservation.StartAt, reservation.EndAt, reservation.Status, reservation.DepositStatus,
		reservation.AutoCancelAt, reservation.CancellationReason, reservation.OrderID, reservation.Notes,
		reservation.CreatedAt, reservation.CreatedBy, reservation.LastUpdatedAt, reservation.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isExclusionViolation(err) {
			// Two writers raced past the availability check for the same
			// table and window.
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert reservation "+reservation.ReservationID, err)
	}
	return nil
}

func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE org_id = $1 AND reservation_id = $2;`
	return scanReservation(r.Pool.QueryRow(ctx, query, orgID, reservationID))
}

// Overlap predicates below use half-open [start_at, end_at) semantics:
// start_at < $end AND $start < end_at.

func (r *PgxReservationRepository) FindActiveByTable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + ` FROM reservations
		WHERE org_id = $1 AND table_id = $2
		  AND status = ANY($3)
		  AND start_at < $4 AND $5 < end_at
		  AND ($6::text IS NULL OR reservation_id <> $6)
		ORDER BY start_at;
	`
	return r.queryReservations(ctx, query, orgID, tableID, activeStatuses(), end, start, excludeReservationID)
}

func (r *PgxReservationRepository) FindActiveByBranch(ctx context.Context, orgID string, branchID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + ` FROM reservations
		WHERE org_id = $1 AND branch_id = $2
		  AND status = ANY($3)
		  AND start_at < $4 AND $5 < end_at
		  AND ($6::text IS NULL OR reservation_id <> $6)
		ORDER BY start_at;
	`
	return r.queryReservations(ctx, query, orgID, branchID, activeStatuses(), end, start, excludeReservationID)
}

func (r *PgxReservationRepository) UpdateReservationGuarded(ctx context.Context, reservation domain.Reservation, expectedStatus domain.ReservationStatus) error {
	// deposit_status is deliberately not written here: the deposit
	// settlement path mirrors it in its own transaction, and writing the
	// caller's in-memory copy could regress a concurrent settlement.
	query := `
		UPDATE reservations
		SET table_id = $1, party_size = $2, start_at = $3, end_at = $4,
		    status = $5, auto_cancel_at = $6,
		    cancellation_reason = $7, order_id = $8, notes = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE org_id = $12 AND reservation_id = $13 AND status = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		reservation.TableID, reservation.PartySize, reservation.StartAt, reservation.EndAt,
		reservation.Status, reservation.AutoCancelAt,
		reservation.CancellationReason, reservation.OrderID, reservation.Notes,
		reservation.LastUpdatedAt, reservation.LastUpdatedBy,
		reservation.OrgID, reservation.ReservationID, expectedStatus,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to update reservation "+reservation.ReservationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a row that is not there at all.
		exists, err := r.exists(ctx, reservation.OrgID, reservation.ReservationID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxReservationRepository) ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + ` FROM reservations
		WHERE status = $1 AND auto_cancel_at IS NOT NULL AND auto_cancel_at <= $2
		ORDER BY auto_cancel_at
		LIMIT $3;
	`
	return r.queryReservations(ctx, query, domain.ReservationHeld, cutoff, limit)
}

func (r *PgxReservationRepository) ListReservations(ctx context.Context, orgID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.Reservation, *string, error) {
	offset, err := utils.DecodeNextToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `
		SELECT ` + reservationColumns + ` FROM reservations
		WHERE org_id = $1 AND branch_id = $2 AND start_at < $3 AND $4 < end_at
		ORDER BY start_at DESC, reservation_id DESC
		LIMIT $5 OFFSET $6;
	`
	reservations, err := r.queryReservations(ctx, query, orgID, branchID, to, from, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return reservations, utils.NextTokenForPage(offset, limit, len(reservations)), nil
}

func (r *PgxReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reservations", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *reservation)
	}
	return reservations, rows.Err()
}

func (r *PgxReservationRepository) exists(ctx context.Context, orgID, reservationID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE org_id = $1 AND reservation_id = $2);`,
		orgID, reservationID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check reservation existence", err)
	}
	return exists, nil
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveReservationStatuses))
	for i, s := range domain.ActiveReservationStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
