package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference, or SystemActorID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActorID is recorded as the acting user when the automation engine,
// rather than a staff member, performs a mutation.
const SystemActorID = "SYSTEM"

// GuestActorID is recorded as the acting user when a guest mutates their own
// reservation through a public booking link.
const GuestActorID = "GUEST"
