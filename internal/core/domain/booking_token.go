package domain

import "time"

// BookingTokenScope limits what a public booking link may do.
type BookingTokenScope string

const (
	ScopeConfirm BookingTokenScope = "CONFIRM"
	ScopeCancel  BookingTokenScope = "CANCEL"
	ScopeView    BookingTokenScope = "VIEW"
)

// BookingTokenClaims are the validated contents of a public booking token.
type BookingTokenClaims struct {
	TokenID       string            `json:"tokenID"`
	ReservationID string            `json:"reservationID"`
	OrgID         string            `json:"orgID"`
	Scope         BookingTokenScope `json:"scope"`
	ExpiresAt     time.Time         `json:"expiresAt"`
}

// BookingTokenUse marks a single-use token as consumed. Inserting a second
// use for the same token conflicts, which is what makes the links single-use.
type BookingTokenUse struct {
	TokenID       string    `json:"tokenID"`
	ReservationID string    `json:"reservationID"`
	UsedAt        time.Time `json:"usedAt"`
}
