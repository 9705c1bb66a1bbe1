package dto

import (
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// ListLogsParams filters the automation audit trail. Nil fields are ignored.
type ListLogsParams struct {
	BranchID   *string
	EntityType *string
	EntityID   *string
	Action     *string
	From       *time.Time
	To         *time.Time
	Limit      int
	NextToken  *string
}

// AutomationLogResponse is the API representation of one audit record.
type AutomationLogResponse struct {
	LogID      string    `json:"logID"`
	BranchID   *string   `json:"branchID,omitempty"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	Action     string    `json:"action"`
	Before     string    `json:"before,omitempty"`
	After      string    `json:"after,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	ActorID    string    `json:"actorID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToAutomationLogResponse converts a domain audit record to its API shape.
func ToAutomationLogResponse(l *domain.AutomationLog) AutomationLogResponse {
	return AutomationLogResponse{
		LogID:      l.LogID,
		BranchID:   l.BranchID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     string(l.Action),
		Before:     l.Before,
		After:      l.After,
		Detail:     l.Detail,
		ActorID:    l.ActorID,
		CreatedAt:  l.CreatedAt,
	}
}

// ListLogsResponse is a page of audit records.
type ListLogsResponse struct {
	Logs      []AutomationLogResponse `json:"logs"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// TickResult summarizes one automation pass.
type TickResult struct {
	HoldsExpired        int `json:"holdsExpired"`
	RemindersSent       int `json:"remindersSent"`
	RemindersSuppressed int `json:"remindersSuppressed"`
	WaitlistPromoted    int `json:"waitlistPromoted"`
	Errors              int `json:"errors"`
}
