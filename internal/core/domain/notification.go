package domain

import "time"

// NotificationType is the delivery channel of a notification.
type NotificationType string

const (
	NotificationLog   NotificationType = "LOG"
	NotificationEmail NotificationType = "EMAIL"
	NotificationSMS   NotificationType = "SMS"
)

// NotificationStatus records the (simulated) delivery outcome.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "SENT"
	NotificationFailed NotificationStatus = "FAILED"
)

// Notification is one fire-and-forget message recorded by the notification
// sink. Delivery is log-and-mark-sent; failures never roll back the
// transaction that triggered the event.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	OrgID          string             `json:"orgID"`
	BranchID       *string            `json:"branchID"`
	ReservationID  *string            `json:"reservationID"`
	WaitlistID     *string            `json:"waitlistID"`
	Type           NotificationType   `json:"type"`
	Event          string             `json:"event"` // e.g. "RESERVATION_CANCELLED"
	ToAddress      *string            `json:"toAddress"`
	Payload        string             `json:"payload"`
	Status         NotificationStatus `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
}
