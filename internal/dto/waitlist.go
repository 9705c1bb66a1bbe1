package dto

import (
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// JoinWaitlistRequest adds a walk-in party to a branch's waitlist.
type JoinWaitlistRequest struct {
	BranchID   string `json:"branchID" binding:"required"`
	GuestName  string `json:"guestName" binding:"required"`
	GuestPhone string `json:"guestPhone"`
	PartySize  int    `json:"partySize" binding:"required,gt=0"`
	Notes      string `json:"notes"`
}

// WaitlistResponse is the API representation of a waitlist entry.
type WaitlistResponse struct {
	WaitlistID              string    `json:"waitlistID"`
	BranchID                string    `json:"branchID"`
	GuestName               string    `json:"guestName"`
	GuestPhone              string    `json:"guestPhone"`
	PartySize               int       `json:"partySize"`
	Status                  string    `json:"status"`
	PromotedToReservationID *string   `json:"promotedToReservationID,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
}

// ToWaitlistResponse converts a domain waitlist entry to its API shape.
func ToWaitlistResponse(e *domain.WaitlistEntry) WaitlistResponse {
	return WaitlistResponse{
		WaitlistID:              e.WaitlistID,
		BranchID:                e.BranchID,
		GuestName:               e.GuestName,
		GuestPhone:              e.GuestPhone,
		PartySize:               e.PartySize,
		Status:                  string(e.Status),
		PromotedToReservationID: e.PromotedToReservationID,
		CreatedAt:               e.CreatedAt,
	}
}
