package domain

// WaitlistStatus is the lifecycle state of a waitlist entry.
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "WAITING"
	WaitlistSeated    WaitlistStatus = "SEATED"
	WaitlistCancelled WaitlistStatus = "CANCELLED"
)

// WaitlistEntry is a walk-in party waiting for a table. Entries are promoted
// in FIFO order by CreatedAt and are immutable once SEATED or CANCELLED.
type WaitlistEntry struct {
	WaitlistID              string         `json:"waitlistID"`
	OrgID                   string         `json:"orgID"`
	BranchID                string         `json:"branchID"`
	GuestName               string         `json:"guestName"`
	GuestPhone              string         `json:"guestPhone"`
	PartySize               int            `json:"partySize"`
	Status                  WaitlistStatus `json:"status"`
	PromotedToReservationID *string        `json:"promotedToReservationID"`
	Notes                   string         `json:"notes"`
	AuditFields
}
