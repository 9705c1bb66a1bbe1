package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// BranchSvcFacade manages branches, tables and scheduling configuration.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, orgID string, req dto.CreateBranchRequest, actorID string) (*domain.Branch, error)
	GetBranch(ctx context.Context, orgID string, branchID string) (*domain.Branch, error)

	CreateTable(ctx context.Context, orgID string, branchID string, req dto.CreateTableRequest, actorID string) (*domain.RestaurantTable, error)
	ListTables(ctx context.Context, orgID string, branchID string) ([]domain.RestaurantTable, error)

	UpsertPolicy(ctx context.Context, orgID string, branchID string, req dto.UpsertPolicyRequest, actorID string) (*domain.ReservationPolicy, error)
	GetPolicy(ctx context.Context, orgID string, branchID string) (*domain.ReservationPolicy, error)

	AddOperatingHours(ctx context.Context, orgID string, branchID string, req dto.OperatingHoursRequest, actorID string) (*domain.OperatingHours, error)
	AddBlackout(ctx context.Context, orgID string, branchID string, req dto.BlackoutRequest, actorID string) (*domain.Blackout, error)
	SetCapacityRule(ctx context.Context, orgID string, branchID string, req dto.CapacityRuleRequest, actorID string) (*domain.CapacityRule, error)
}
