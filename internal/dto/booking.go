package dto

// PublicBookingActionRequest is the payload for a guest acting on a
// reservation through a single-use booking link.
type PublicBookingActionRequest struct {
	Token  string  `json:"token" binding:"required"`
	Reason *string `json:"reason"`
}

// GenerateBookingLinkRequest asks for a single-use guest link.
type GenerateBookingLinkRequest struct {
	Scope    string `json:"scope" binding:"required,oneof=CONFIRM CANCEL VIEW"`
	TTLHours int    `json:"ttlHours" binding:"omitempty,gt=0"`
}

// BookingLinkResponse carries the signed token.
type BookingLinkResponse struct {
	Token string `json:"token"`
	Scope string `json:"scope"`
}
