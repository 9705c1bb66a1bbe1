package repositories

import (
	"context"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// ScheduleRepositoryFacade defines persistence operations for branch
// scheduling configuration (operating hours, blackouts, capacity rules).
type ScheduleRepositoryFacade interface {
	ListOperatingHours(ctx context.Context, orgID string, branchID string) ([]domain.OperatingHours, error)
	SaveOperatingHours(ctx context.Context, hours domain.OperatingHours) error

	// ListBlackoutsOverlapping returns blackouts whose interval overlaps
	// [start, end).
	ListBlackoutsOverlapping(ctx context.Context, orgID string, branchID string, start, end time.Time) ([]domain.Blackout, error)
	SaveBlackout(ctx context.Context, blackout domain.Blackout) error

	// FindCapacityRule returns the branch's active capacity rule.
	// ErrNotFound when the branch has none.
	FindCapacityRule(ctx context.Context, orgID string, branchID string) (*domain.CapacityRule, error)
	SaveCapacityRule(ctx context.Context, rule domain.CapacityRule) error
}
