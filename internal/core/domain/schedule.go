package domain

import "time"

// OperatingHours is one weekly open window for a branch. Times are stored as
// "HH:MM" strings interpreted in the branch's local time zone. A branch may
// have multiple windows per weekday (lunch and dinner service).
type OperatingHours struct {
	HoursID  string       `json:"hoursID"`
	OrgID    string       `json:"orgID"`
	BranchID string       `json:"branchID"`
	Weekday  time.Weekday `json:"weekday"`
	OpensAt  string       `json:"opensAt"`  // "12:00"
	ClosesAt string       `json:"closesAt"` // "23:30"
	AuditFields
}

// Blackout is an ad-hoc interval during which a branch accepts no
// reservations regardless of operating hours. [StartAt, EndAt) half-open.
type Blackout struct {
	BlackoutID string    `json:"blackoutID"`
	OrgID      string    `json:"orgID"`
	BranchID   string    `json:"branchID"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Reason     string    `json:"reason"`
	AuditFields
}

// CapacityRule caps how much can be booked into any hour-aligned bucket.
// Nil ceilings are unenforced.
type CapacityRule struct {
	RuleID            string `json:"ruleID"`
	OrgID             string `json:"orgID"`
	BranchID          string `json:"branchID"`
	MaxPartiesPerHour *int   `json:"maxPartiesPerHour"`
	MaxCoversPerHour  *int   `json:"maxCoversPerHour"`
	IsActive          bool   `json:"isActive"`
	AuditFields
}

// ScheduleDenialCode explains why a candidate window was rejected by the
// scheduling constraints evaluator. Checks run in a fixed order, so the code
// always names the first failing constraint.
type ScheduleDenialCode string

const (
	DenialOutsideHours    ScheduleDenialCode = "OUTSIDE_HOURS"
	DenialBlackout        ScheduleDenialCode = "BLACKOUT"
	DenialCapacityParties ScheduleDenialCode = "CAPACITY_PARTIES"
	DenialCapacityCovers  ScheduleDenialCode = "CAPACITY_COVERS"
	DenialBranchClosed    ScheduleDenialCode = "BRANCH_CLOSED"
)

// ScheduleDecision is the result of a scheduling-constraints evaluation.
type ScheduleDecision struct {
	Allowed bool               `json:"allowed"`
	Code    ScheduleDenialCode `json:"code,omitempty"`
	Reason  string             `json:"reason,omitempty"`
}
