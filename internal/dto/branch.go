package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// CreateBranchRequest registers a new branch for the caller's org.
type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Timezone string `json:"timezone" binding:"required,timezone"`
}

// CreateTableRequest registers a bookable table within a branch.
type CreateTableRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpsertPolicyRequest replaces a branch's reservation policy. Zero-valued
// numeric fields fall back to the documented defaults.
type UpsertPolicyRequest struct {
	LeadTimeMinutes        int              `json:"leadTimeMinutes" binding:"omitempty,gte=0"`
	MaxPartySize           int              `json:"maxPartySize" binding:"omitempty,gt=0"`
	HoldExpiryMinutes      int              `json:"holdExpiryMinutes" binding:"omitempty,gt=0"`
	CancelCutoffMinutes    int              `json:"cancelCutoffMinutes" binding:"omitempty,gte=0"`
	NoShowGraceMinutes     int              `json:"noShowGraceMinutes" binding:"omitempty,gte=0"`
	PromotionWindowMinutes int              `json:"promotionWindowMinutes" binding:"omitempty,gt=0"`
	DepositRequired        bool             `json:"depositRequired"`
	DepositAmount          *decimal.Decimal `json:"depositAmount"`
	AutoExpireHeldEnabled  bool             `json:"autoExpireHeldEnabled"`
	WaitlistAutoPromote    bool             `json:"waitlistAutoPromote"`
	ReminderEnabled        bool             `json:"reminderEnabled"`
	MaxCapacityPerSlot     int              `json:"maxCapacityPerSlot" binding:"omitempty,gte=0"`
}

// OperatingHoursRequest adds one weekly open window ("HH:MM" local times).
type OperatingHoursRequest struct {
	Weekday  int    `json:"weekday" binding:"gte=0,lte=6"`
	OpensAt  string `json:"opensAt" binding:"required,hhmm"`
	ClosesAt string `json:"closesAt" binding:"required,hhmm"`
}

// BlackoutRequest adds an ad-hoc closed interval.
type BlackoutRequest struct {
	StartAt time.Time `json:"startAt" binding:"required"`
	EndAt   time.Time `json:"endAt" binding:"required"`
	Reason  string    `json:"reason"`
}

// CapacityRuleRequest sets per-hour booking ceilings. Nil means unenforced.
type CapacityRuleRequest struct {
	MaxPartiesPerHour *int `json:"maxPartiesPerHour" binding:"omitempty,gt=0"`
	MaxCoversPerHour  *int `json:"maxCoversPerHour" binding:"omitempty,gt=0"`
}

// BranchResponse is the API representation of a branch.
type BranchResponse struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"isActive"`
}

// ToBranchResponse converts a domain branch to its API shape.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID: b.BranchID,
		Name:     b.Name,
		Timezone: b.Timezone,
		IsActive: b.IsActive,
	}
}

// TableResponse is the API representation of a table.
type TableResponse struct {
	TableID  string `json:"tableID"`
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

// ToTableResponse converts a domain table to its API shape.
func ToTableResponse(t *domain.RestaurantTable) TableResponse {
	return TableResponse{
		TableID:  t.TableID,
		BranchID: t.BranchID,
		Name:     t.Name,
		Capacity: t.Capacity,
		IsActive: t.IsActive,
	}
}
