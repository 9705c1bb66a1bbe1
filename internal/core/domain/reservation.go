package domain

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationHeld      ReservationStatus = "HELD"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

// ActiveReservationStatuses are the statuses that occupy a table for
// overlap and capacity purposes.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationHeld,
	ReservationConfirmed,
	ReservationSeated,
}

// IsTerminal reports whether no further transition is allowed from s.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> target.
// HELD -> {CONFIRMED, CANCELLED}
// CONFIRMED -> {SEATED, CANCELLED, NO_SHOW}
// HELD -> SEATED is also legal (walk-in seats a held party directly)
// SEATED -> {COMPLETED}
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationHeld:
		return target == ReservationConfirmed || target == ReservationCancelled ||
			target == ReservationSeated || target == ReservationNoShow
	case ReservationConfirmed:
		return target == ReservationSeated || target == ReservationCancelled || target == ReservationNoShow
	case ReservationSeated:
		return target == ReservationCompleted
	}
	return false
}

// Reservation is a booked (or held) table slot. StartAt/EndAt form a
// half-open interval [StartAt, EndAt).
type Reservation struct {
	ReservationID      string            `json:"reservationID"`
	OrgID              string            `json:"orgID"`
	BranchID           string            `json:"branchID"`
	TableID            *string           `json:"tableID"` // nil until a table is assigned
	GuestName          string            `json:"guestName"`
	GuestPhone         string            `json:"guestPhone"`
	PartySize          int               `json:"partySize"`
	StartAt            time.Time         `json:"startAt"`
	EndAt              time.Time         `json:"endAt"`
	Status             ReservationStatus `json:"status"`
	DepositStatus      DepositStatus     `json:"depositStatus"` // DepositNone when no deposit is attached
	AutoCancelAt       *time.Time        `json:"autoCancelAt"`  // non-nil iff Status == HELD
	CancellationReason *string           `json:"cancellationReason"`
	OrderID            *string           `json:"orderID"` // external order linked on seating
	Notes              string            `json:"notes"`
	AuditFields
}

// Overlaps reports whether the reservation's interval intersects [start, end).
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && start.Before(r.EndAt)
}
