package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// branchService manages branches, tables and scheduling configuration.
type branchService struct {
	branchRepo   portsrepo.BranchRepositoryFacade
	policyRepo   portsrepo.PolicyRepositoryFacade
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	clk          clock.Clock
}

// NewBranchService creates a new BranchService.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, policyRepo portsrepo.PolicyRepositoryFacade, scheduleRepo portsrepo.ScheduleRepositoryFacade, clk clock.Clock) portssvc.BranchSvcFacade {
	return &branchService{
		branchRepo:   branchRepo,
		policyRepo:   policyRepo,
		scheduleRepo: scheduleRepo,
		clk:          clk,
	}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) audit(actorID string) domain.AuditFields {
	now := s.clk.Now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}

func (s *branchService) CreateBranch(ctx context.Context, orgID string, req dto.CreateBranchRequest, actorID string) (*domain.Branch, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, req.Timezone)
	}
	branch := domain.Branch{
		BranchID:    uuid.NewString(),
		OrgID:       orgID,
		Name:        req.Name,
		Timezone:    req.Timezone,
		IsActive:    true,
		AuditFields: s.audit(actorID),
	}
	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("saving branch: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Branch created", "branch_id", branch.BranchID)
	return &branch, nil
}

func (s *branchService) GetBranch(ctx context.Context, orgID string, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, orgID, branchID)
}

func (s *branchService) CreateTable(ctx context.Context, orgID string, branchID string, req dto.CreateTableRequest, actorID string) (*domain.RestaurantTable, error) {
	if _, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID); err != nil {
		return nil, err
	}
	table := domain.RestaurantTable{
		TableID:     uuid.NewString(),
		OrgID:       orgID,
		BranchID:    branchID,
		Name:        req.Name,
		Capacity:    req.Capacity,
		IsActive:    true,
		AuditFields: s.audit(actorID),
	}
	if err := s.branchRepo.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("saving table: %w", err)
	}
	return &table, nil
}

func (s *branchService) ListTables(ctx context.Context, orgID string, branchID string) ([]domain.RestaurantTable, error) {
	return s.branchRepo.ListActiveTables(ctx, orgID, branchID)
}

func (s *branchService) UpsertPolicy(ctx context.Context, orgID string, branchID string, req dto.UpsertPolicyRequest, actorID string) (*domain.ReservationPolicy, error) {
	if _, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID); err != nil {
		return nil, err
	}

	policy := domain.DefaultPolicy(orgID, branchID)
	existing, err := s.policyRepo.FindPolicyByBranch(ctx, orgID, branchID)
	switch {
	case err == nil:
		policy = *existing
	case errors.Is(err, apperrors.ErrNotFound):
		policy.PolicyID = uuid.NewString()
		policy.AuditFields = s.audit(actorID)
	default:
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	if req.LeadTimeMinutes > 0 {
		policy.LeadTimeMinutes = req.LeadTimeMinutes
	}
	if req.MaxPartySize > 0 {
		policy.MaxPartySize = req.MaxPartySize
	}
	if req.HoldExpiryMinutes > 0 {
		policy.HoldExpiryMinutes = req.HoldExpiryMinutes
	}
	if req.CancelCutoffMinutes > 0 {
		policy.CancelCutoffMinutes = req.CancelCutoffMinutes
	}
	if req.NoShowGraceMinutes > 0 {
		policy.NoShowGraceMinutes = req.NoShowGraceMinutes
	}
	if req.PromotionWindowMinutes > 0 {
		policy.PromotionWindowMinutes = req.PromotionWindowMinutes
	}
	policy.DepositRequired = req.DepositRequired
	if req.DepositAmount != nil {
		if req.DepositAmount.IsNegative() {
			return nil, fmt.Errorf("%w: deposit amount cannot be negative", apperrors.ErrValidation)
		}
		policy.DepositAmount = *req.DepositAmount
	} else if req.DepositRequired && policy.DepositAmount.Equal(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount required when deposits are enabled", apperrors.ErrValidation)
	}
	policy.AutoExpireHeldEnabled = req.AutoExpireHeldEnabled
	policy.WaitlistAutoPromote = req.WaitlistAutoPromote
	policy.ReminderEnabled = req.ReminderEnabled
	policy.MaxCapacityPerSlot = req.MaxCapacityPerSlot

	policy.LastUpdatedAt = s.clk.Now()
	policy.LastUpdatedBy = actorID

	if err := s.policyRepo.SavePolicy(ctx, policy); err != nil {
		return nil, fmt.Errorf("saving policy: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Policy upserted", "branch_id", branchID)
	return &policy, nil
}

func (s *branchService) GetPolicy(ctx context.Context, orgID string, branchID string) (*domain.ReservationPolicy, error) {
	policy, err := s.policyRepo.FindPolicyByBranch(ctx, orgID, branchID)
	if errors.Is(err, apperrors.ErrNotFound) {
		fallback := domain.DefaultPolicy(orgID, branchID)
		return &fallback, nil
	}
	return policy, err
}

func (s *branchService) AddOperatingHours(ctx context.Context, orgID string, branchID string, req dto.OperatingHoursRequest, actorID string) (*domain.OperatingHours, error) {
	if _, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID); err != nil {
		return nil, err
	}
	if req.OpensAt >= req.ClosesAt {
		return nil, fmt.Errorf("%w: opening time must be before closing time", apperrors.ErrValidation)
	}
	hours := domain.OperatingHours{
		HoursID:     uuid.NewString(),
		OrgID:       orgID,
		BranchID:    branchID,
		Weekday:     time.Weekday(req.Weekday),
		OpensAt:     req.OpensAt,
		ClosesAt:    req.ClosesAt,
		AuditFields: s.audit(actorID),
	}
	if err := s.scheduleRepo.SaveOperatingHours(ctx, hours); err != nil {
		return nil, fmt.Errorf("saving operating hours: %w", err)
	}
	return &hours, nil
}

func (s *branchService) AddBlackout(ctx context.Context, orgID string, branchID string, req dto.BlackoutRequest, actorID string) (*domain.Blackout, error) {
	if _, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID); err != nil {
		return nil, err
	}
	if !req.StartAt.Before(req.EndAt) {
		return nil, fmt.Errorf("%w: blackout start must be before end", apperrors.ErrValidation)
	}
	blackout := domain.Blackout{
		BlackoutID:  uuid.NewString(),
		OrgID:       orgID,
		BranchID:    branchID,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
		Reason:      req.Reason,
		AuditFields: s.audit(actorID),
	}
	if err := s.scheduleRepo.SaveBlackout(ctx, blackout); err != nil {
		return nil, fmt.Errorf("saving blackout: %w", err)
	}
	return &blackout, nil
}

func (s *branchService) SetCapacityRule(ctx context.Context, orgID string, branchID string, req dto.CapacityRuleRequest, actorID string) (*domain.CapacityRule, error) {
	if _, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID); err != nil {
		return nil, err
	}
	rule := domain.CapacityRule{
		RuleID:            uuid.NewString(),
		OrgID:             orgID,
		BranchID:          branchID,
		MaxPartiesPerHour: req.MaxPartiesPerHour,
		MaxCoversPerHour:  req.MaxCoversPerHour,
		IsActive:          true,
		AuditFields:       s.audit(actorID),
	}
	if existing, err := s.scheduleRepo.FindCapacityRule(ctx, orgID, branchID); err == nil {
		rule.RuleID = existing.RuleID
		rule.CreatedAt = existing.CreatedAt
		rule.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("loading capacity rule: %w", err)
	}
	if err := s.scheduleRepo.SaveCapacityRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("saving capacity rule: %w", err)
	}
	return &rule, nil
}
