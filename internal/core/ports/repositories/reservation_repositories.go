package repositories

import (
	"context"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// ReservationRepositoryFacade defines persistence operations for reservations.
//
// Every status-changing write goes through UpdateReservationGuarded, which
// includes the expected current status in the same atomic UPDATE that commits
// the new one. A lost race (zero rows affected) surfaces as ErrConflict so a
// transition is never double-applied.
type ReservationRepositoryFacade interface {
	SaveReservation(ctx context.Context, reservation domain.Reservation) error
	FindReservationByID(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error)

	// FindActiveByTable returns reservations in an active status
	// (HELD/CONFIRMED/SEATED) on the given table whose [startAt, endAt)
	// interval overlaps [start, end).
	FindActiveByTable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error)

	// FindActiveByBranch returns active reservations for the branch whose
	// interval overlaps [start, end), regardless of table assignment.
	FindActiveByBranch(ctx context.Context, orgID string, branchID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error)

	// UpdateReservationGuarded persists the reservation's mutable fields iff
	// the stored status still equals expectedStatus. Returns ErrConflict when
	// the guard fails and ErrNotFound when the row does not exist in scope.
	// depositStatus is excluded: its stored mirror belongs to the deposit
	// settlement transaction and is never overwritten from here.
	UpdateReservationGuarded(ctx context.Context, reservation domain.Reservation, expectedStatus domain.ReservationStatus) error

	// ListExpiredHolds selects HELD reservations with autoCancelAt <= cutoff
	// across all orgs, oldest first. Used by the hold-expiry scan; expired
	// rows drop out of the selection once their status flips.
	ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]domain.Reservation, error)

	// ListReservations returns reservations for a branch within a window,
	// newest first, with token pagination.
	ListReservations(ctx context.Context, orgID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.Reservation, *string, error)
}
