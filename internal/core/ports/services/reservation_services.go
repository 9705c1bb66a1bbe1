package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// ReservationSvcFacade owns the reservation lifecycle. Every transition is
// guarded by the current status; an illegal transition returns ErrConflict.
// All methods are safe to call from both the request path and the automation
// engine concurrently.
type ReservationSvcFacade interface {
	CreateReservation(ctx context.Context, orgID string, req dto.CreateReservationRequest, actorID string) (*domain.Reservation, error)
	GetReservation(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, orgID string, branchID string, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error)

	ConfirmReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error)
	SeatReservation(ctx context.Context, orgID string, reservationID string, orderID *string, actorID string) (*domain.Reservation, error)
	CompleteReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error)

	// CancelReservation refuses SEATED and terminal reservations. It settles
	// any open deposit (REQUIRED is voided, PAID is refunded with a journal
	// entry) and then attempts waitlist promotion for the freed capacity.
	// enforceCutoff applies the branch's cancellation cutoff (guest-initiated
	// cancellations); staff cancellations pass false.
	CancelReservation(ctx context.Context, orgID string, reservationID string, reason *string, actorID string, enforceCutoff bool) (*domain.Reservation, error)

	// MarkNoShow refuses SEATED and terminal reservations. Past the grace
	// period a PAID deposit is forfeited; within grace it is left untouched.
	MarkNoShow(ctx context.Context, orgID string, reservationID string, reason *string, actorID string) (*domain.Reservation, error)

	ModifyReservation(ctx context.Context, orgID string, reservationID string, req dto.ModifyReservationRequest, actorID string) (*domain.Reservation, error)
}
