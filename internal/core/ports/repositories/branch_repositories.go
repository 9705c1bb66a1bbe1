package repositories

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// BranchRepositoryFacade defines persistence operations for branches and tables.
type BranchRepositoryFacade interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, orgID string, branchID string) (*domain.Branch, error)

	SaveTable(ctx context.Context, table domain.RestaurantTable) error
	FindTableByID(ctx context.Context, orgID string, tableID string) (*domain.RestaurantTable, error)

	// ListActiveTables returns the branch's active tables ordered by capacity
	// ascending, then table ID ascending. Table auto-assignment relies on this
	// ordering being stable (smallest sufficient table wins, ties by ID).
	ListActiveTables(ctx context.Context, orgID string, branchID string) ([]domain.RestaurantTable, error)
}
