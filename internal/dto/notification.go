package dto

// SendNotificationInput is the notification sink's contract. Delivery is
// fire-and-forget: callers must not fail their own transaction when Send
// errors.
type SendNotificationInput struct {
	OrgID         string
	BranchID      *string
	ReservationID *string
	WaitlistID    *string
	Type          string // LOG, EMAIL, SMS
	Event         string // e.g. "RESERVATION_CANCELLED"
	ToAddress     *string
	Payload       string
}
