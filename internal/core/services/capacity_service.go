package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// capacityService evaluates table availability and branch-level booking
// ceilings. All interval checks use half-open [start, end) semantics, so
// back-to-back reservations on the same table do not collide.
type capacityService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	branchRepo      portsrepo.BranchRepositoryFacade
	policyRepo      portsrepo.PolicyRepositoryFacade
}

// NewCapacityService creates a new CapacityService.
func NewCapacityService(reservationRepo portsrepo.ReservationRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade, policyRepo portsrepo.PolicyRepositoryFacade) portssvc.CapacitySvcFacade {
	return &capacityService{
		reservationRepo: reservationRepo,
		branchRepo:      branchRepo,
		policyRepo:      policyRepo,
	}
}

var _ portssvc.CapacitySvcFacade = (*capacityService)(nil)

func (s *capacityService) IsTableAvailable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) (bool, error) {
	if !start.Before(end) {
		return false, fmt.Errorf("%w: start must be before end", apperrors.ErrValidation)
	}
	overlapping, err := s.reservationRepo.FindActiveByTable(ctx, orgID, tableID, start, end, excludeReservationID)
	if err != nil {
		return false, fmt.Errorf("checking table overlaps: %w", err)
	}
	return len(overlapping) == 0, nil
}

// hourBucket returns the hour-aligned bucket containing t.
func hourBucket(t time.Time) (time.Time, time.Time) {
	bucketStart := t.UTC().Truncate(time.Hour)
	return bucketStart, bucketStart.Add(time.Hour)
}

func (s *capacityService) CheckCapacity(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*dto.CheckCapacityResponse, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", apperrors.ErrValidation)
	}

	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, branchID)
	if err != nil {
		return nil, err
	}
	if policy.MaxCapacityPerSlot <= 0 {
		return &dto.CheckCapacityResponse{Allowed: true}, nil
	}

	bucketStart, bucketEnd := hourBucket(start)
	active, err := s.reservationRepo.FindActiveByBranch(ctx, orgID, branchID, bucketStart, bucketEnd, excludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("counting branch covers: %w", err)
	}
	current := 0
	for _, r := range active {
		current += r.PartySize
	}

	maxCovers := policy.MaxCapacityPerSlot
	return &dto.CheckCapacityResponse{
		Allowed: current+partySize <= maxCovers,
		Current: current,
		Max:     &maxCovers,
	}, nil
}

func (s *capacityService) FindAvailableTable(ctx context.Context, orgID string, branchID string, partySize int, start, end time.Time) (*domain.RestaurantTable, error) {
	tables, err := s.branchRepo.ListActiveTables(ctx, orgID, branchID)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	// Tables arrive ordered by capacity then ID, so the first free fit is
	// the smallest sufficient table with the deterministic tie-break.
	for i := range tables {
		if tables[i].Capacity < partySize {
			continue
		}
		free, err := s.IsTableAvailable(ctx, orgID, tables[i].TableID, start, end, nil)
		if err != nil {
			return nil, err
		}
		if free {
			return &tables[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no table available for party of %d", apperrors.ErrNotFound, partySize)
}

// resolvePolicy loads the branch policy, falling back to the documented
// defaults when none is stored.
func resolvePolicy(ctx context.Context, policyRepo portsrepo.PolicyRepositoryFacade, orgID, branchID string) (domain.ReservationPolicy, error) {
	policy, err := policyRepo.FindPolicyByBranch(ctx, orgID, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultPolicy(orgID, branchID), nil
		}
		return domain.ReservationPolicy{}, fmt.Errorf("loading policy: %w", err)
	}
	return *policy, nil
}
