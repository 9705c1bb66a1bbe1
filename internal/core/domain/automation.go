package domain

import "time"

// AutomationAction identifies what an automated (or money-relevant manual)
// mutation did, for the append-only audit trail.
type AutomationAction string

const (
	ActionHoldExpired        AutomationAction = "HOLD_EXPIRED"
	ActionReminderSent       AutomationAction = "REMINDER_SENT"
	ActionReminderSuppressed AutomationAction = "REMINDER_SUPPRESSED"
	ActionWaitlistPromoted   AutomationAction = "WAITLIST_PROMOTED"
	ActionReservationCreated AutomationAction = "RESERVATION_CREATED"
	ActionConfirmed          AutomationAction = "CONFIRMED"
	ActionSeated             AutomationAction = "SEATED"
	ActionCompleted          AutomationAction = "COMPLETED"
	ActionCancelled          AutomationAction = "CANCELLED"
	ActionNoShowWithinGrace  AutomationAction = "NO_SHOW_WITHIN_GRACE"
	ActionNoShowForfeited    AutomationAction = "NO_SHOW_FORFEITED"
	ActionDepositRequired    AutomationAction = "DEPOSIT_REQUIRED"
	ActionDepositPaid        AutomationAction = "DEPOSIT_PAID"
	ActionDepositRefunded    AutomationAction = "DEPOSIT_REFUNDED"
	ActionDepositApplied     AutomationAction = "DEPOSIT_APPLIED"
	ActionDepositForfeited   AutomationAction = "DEPOSIT_FORFEITED"
)

// AutomationLog is an append-only audit record of one automated or
// money-relevant action. Never mutated after creation.
type AutomationLog struct {
	LogID      string           `json:"logID"`
	OrgID      string           `json:"orgID"`
	BranchID   *string          `json:"branchID"`
	EntityType string           `json:"entityType"` // "reservation", "waitlist", "deposit", "reminder"
	EntityID   string           `json:"entityID"`
	Action     AutomationAction `json:"action"`
	Before     string           `json:"before"` // status snapshot prior to the action
	After      string           `json:"after"`  // status snapshot after the action
	Detail     string           `json:"detail"`
	ActorID    string           `json:"actorID"` // SystemActorID or a staff user id
	CreatedAt  time.Time        `json:"createdAt"`
}

// ReservationReminder is a scheduled pre-visit reminder. SentAt stays nil
// until the automation engine fires (or suppresses) it; the row never fires
// twice because the due-scan only selects rows with SentAt IS NULL.
type ReservationReminder struct {
	ReminderID    string     `json:"reminderID"`
	OrgID         string     `json:"orgID"`
	BranchID      string     `json:"branchID"`
	ReservationID string     `json:"reservationID"`
	ScheduledAt   time.Time  `json:"scheduledAt"`
	SentAt        *time.Time `json:"sentAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}
