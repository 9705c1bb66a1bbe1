package repositories

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// PolicyRepositoryFacade defines persistence operations for branch policies.
type PolicyRepositoryFacade interface {
	// FindPolicyByBranch returns the stored policy for the branch.
	// ErrNotFound means the caller should fall back to domain.DefaultPolicy.
	FindPolicyByBranch(ctx context.Context, orgID string, branchID string) (*domain.ReservationPolicy, error)
	SavePolicy(ctx context.Context, policy domain.ReservationPolicy) error
}
