package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// CreateReservationRequest is the payload for booking a new reservation.
// The window is half-open: [startAt, endAt).
type CreateReservationRequest struct {
	BranchID      string           `json:"branchID" binding:"required"`
	TableID       *string          `json:"tableID"`
	GuestName     string           `json:"guestName" binding:"required"`
	GuestPhone    string           `json:"guestPhone"`
	PartySize     int              `json:"partySize" binding:"required,gt=0"`
	StartAt       time.Time        `json:"startAt" binding:"required"`
	EndAt         time.Time        `json:"endAt" binding:"required"`
	DepositAmount *decimal.Decimal `json:"depositAmount"`
	CurrencyCode  string           `json:"currencyCode"`
	Notes         string           `json:"notes"`
}

// ModifyReservationRequest changes the window, party size or table of an
// existing non-terminal reservation. Nil fields are left unchanged.
type ModifyReservationRequest struct {
	TableID    *string    `json:"tableID"`
	ClearTable bool       `json:"clearTable"`
	PartySize  *int       `json:"partySize" binding:"omitempty,gt=0"`
	StartAt    *time.Time `json:"startAt"`
	EndAt      *time.Time `json:"endAt"`
	Notes      *string    `json:"notes"`
}

// SeatReservationRequest optionally links an external order on seating.
type SeatReservationRequest struct {
	OrderID *string `json:"orderID"`
}

// CancelReservationRequest carries the optional cancellation reason.
type CancelReservationRequest struct {
	Reason *string `json:"reason"`
}

// NoShowRequest carries the optional no-show reason.
type NoShowRequest struct {
	Reason *string `json:"reason"`
}

// ReservationResponse is the API representation of a reservation.
type ReservationResponse struct {
	ReservationID      string     `json:"reservationID"`
	BranchID           string     `json:"branchID"`
	TableID            *string    `json:"tableID"`
	GuestName          string     `json:"guestName"`
	GuestPhone         string     `json:"guestPhone"`
	PartySize          int        `json:"partySize"`
	StartAt            time.Time  `json:"startAt"`
	EndAt              time.Time  `json:"endAt"`
	Status             string     `json:"status"`
	DepositStatus      string     `json:"depositStatus"`
	AutoCancelAt       *time.Time `json:"autoCancelAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	OrderID            *string    `json:"orderID,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ToReservationResponse converts a domain reservation to its API shape.
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID:      r.ReservationID,
		BranchID:           r.BranchID,
		TableID:            r.TableID,
		GuestName:          r.GuestName,
		GuestPhone:         r.GuestPhone,
		PartySize:          r.PartySize,
		StartAt:            r.StartAt,
		EndAt:              r.EndAt,
		Status:             string(r.Status),
		DepositStatus:      string(r.DepositStatus),
		AutoCancelAt:       r.AutoCancelAt,
		CancellationReason: r.CancellationReason,
		OrderID:            r.OrderID,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
	}
}

// ListReservationsParams paginates a branch's reservations within a window.
type ListReservationsParams struct {
	From      time.Time
	To        time.Time
	Limit     int
	NextToken *string
}

// ListReservationsResponse is a page of reservations.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
