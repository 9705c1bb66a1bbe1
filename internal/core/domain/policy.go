package domain

import "github.com/shopspring/decimal"

// Default policy values applied when a branch has no stored policy row.
const (
	DefaultLeadTimeMinutes        = 60
	DefaultMaxPartySize           = 20
	DefaultHoldExpiryMinutes      = 30
	DefaultCancelCutoffMinutes    = 120
	DefaultNoShowGraceMinutes     = 15
	DefaultPromotionWindowMinutes = 120
)

// ReservationPolicy is the per-branch booking configuration. Read-mostly;
// DefaultPolicy supplies the documented defaults when no row exists.
type ReservationPolicy struct {
	PolicyID string `json:"policyID"`
	OrgID    string `json:"orgID"`
	BranchID string `json:"branchID"`

	LeadTimeMinutes        int `json:"leadTimeMinutes"`
	MaxPartySize           int `json:"maxPartySize"`
	HoldExpiryMinutes      int `json:"holdExpiryMinutes"`
	CancelCutoffMinutes    int `json:"cancelCutoffMinutes"`
	NoShowGraceMinutes     int `json:"noShowGraceMinutes"`
	PromotionWindowMinutes int `json:"promotionWindowMinutes"`

	DepositRequired bool            `json:"depositRequired"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`

	AutoExpireHeldEnabled bool `json:"autoExpireHeldEnabled"`
	WaitlistAutoPromote   bool `json:"waitlistAutoPromote"`
	ReminderEnabled       bool `json:"reminderEnabled"`

	MaxCapacityPerSlot int `json:"maxCapacityPerSlot"` // 0 = unlimited

	AuditFields
}

// DefaultPolicy returns the policy applied when a branch has none configured.
func DefaultPolicy(orgID, branchID string) ReservationPolicy {
	return ReservationPolicy{
		OrgID:                  orgID,
		BranchID:               branchID,
		LeadTimeMinutes:        DefaultLeadTimeMinutes,
		MaxPartySize:           DefaultMaxPartySize,
		HoldExpiryMinutes:      DefaultHoldExpiryMinutes,
		CancelCutoffMinutes:    DefaultCancelCutoffMinutes,
		NoShowGraceMinutes:     DefaultNoShowGraceMinutes,
		PromotionWindowMinutes: DefaultPromotionWindowMinutes,
		DepositAmount:          decimal.Zero,
		AutoExpireHeldEnabled:  true,
		WaitlistAutoPromote:    true,
		ReminderEnabled:        true,
	}
}
