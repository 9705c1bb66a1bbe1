package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
)

// scheduleService evaluates a candidate window against the branch's
// scheduling configuration. Checks run in a fixed order and short-circuit on
// the first failure, so the denial code is deterministic: branch open,
// operating hours, blackouts, then per-hour capacity rule.
type scheduleService struct {
	scheduleRepo    portsrepo.ScheduleRepositoryFacade
	branchRepo      portsrepo.BranchRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scheduleRepo portsrepo.ScheduleRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		scheduleRepo:    scheduleRepo,
		branchRepo:      branchRepo,
		reservationRepo: reservationRepo,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

func deny(code domain.ScheduleDenialCode, reason string) *domain.ScheduleDecision {
	return &domain.ScheduleDecision{Allowed: false, Code: code, Reason: reason}
}

func (s *scheduleService) EvaluateWindow(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*domain.ScheduleDecision, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", apperrors.ErrValidation)
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, orgID, branchID)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive {
		return deny(domain.DenialBranchClosed, "branch is not accepting reservations"), nil
	}

	decision, err := s.checkOperatingHours(ctx, branch, start, end)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		return decision, nil
	}

	blackouts, err := s.scheduleRepo.ListBlackoutsOverlapping(ctx, orgID, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing blackouts: %w", err)
	}
	if len(blackouts) > 0 {
		reason := blackouts[0].Reason
		if reason == "" {
			reason = "branch is blacked out for the requested window"
		}
		return deny(domain.DenialBlackout, reason), nil
	}

	decision, err = s.checkCapacityRule(ctx, orgID, branchID, start, partySize, excludeReservationID)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		return decision, nil
	}

	return &domain.ScheduleDecision{Allowed: true}, nil
}

// checkOperatingHours verifies the window fits inside one open window on the
// start's local weekday. A branch with no configured hours is treated as
// always open. Returns nil when the check passes.
func (s *scheduleService) checkOperatingHours(ctx context.Context, branch *domain.Branch, start, end time.Time) (*domain.ScheduleDecision, error) {
	allHours, err := s.scheduleRepo.ListOperatingHours(ctx, branch.OrgID, branch.BranchID)
	if err != nil {
		return nil, fmt.Errorf("listing operating hours: %w", err)
	}
	if len(allHours) == 0 {
		return nil, nil
	}

	loc, err := time.LoadLocation(branch.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: branch has invalid timezone %q", apperrors.ErrInternal, branch.Timezone)
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	// Reservations crossing local midnight are rejected rather than matched
	// against two weekday windows.
	sy, sm, sd := localStart.Date()
	ey, em, ed := localEnd.Add(-time.Nanosecond).Date()
	if sy != ey || sm != em || sd != ed {
		return deny(domain.DenialOutsideHours, "reservation window crosses the branch's local midnight"), nil
	}

	startMin := localStart.Hour()*60 + localStart.Minute()
	endMin := localEnd.Hour()*60 + localEnd.Minute()
	if endMin == 0 {
		endMin = 24 * 60
	}

	for _, hours := range allHours {
		if hours.Weekday != localStart.Weekday() {
			continue
		}
		opens, err := parseClockMinutes(hours.OpensAt)
		if err != nil {
			return nil, err
		}
		closes, err := parseClockMinutes(hours.ClosesAt)
		if err != nil {
			return nil, err
		}
		if startMin >= opens && endMin <= closes {
			return nil, nil
		}
	}
	return deny(domain.DenialOutsideHours, "requested window is outside operating hours"), nil
}

// checkCapacityRule enforces the per-hour ceilings for the bucket containing
// start. Parties are checked before covers. Returns nil when the check passes.
func (s *scheduleService) checkCapacityRule(ctx context.Context, orgID, branchID string, start time.Time, partySize int, excludeReservationID *string) (*domain.ScheduleDecision, error) {
	rule, err := s.scheduleRepo.FindCapacityRule(ctx, orgID, branchID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading capacity rule: %w", err)
	}
	if !rule.IsActive || (rule.MaxPartiesPerHour == nil && rule.MaxCoversPerHour == nil) {
		return nil, nil
	}

	bucketStart, bucketEnd := hourBucket(start)
	active, err := s.reservationRepo.FindActiveByBranch(ctx, orgID, branchID, bucketStart, bucketEnd, excludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("counting bucket load: %w", err)
	}

	covers := 0
	for _, r := range active {
		covers += r.PartySize
	}

	if rule.MaxPartiesPerHour != nil && len(active)+1 > *rule.MaxPartiesPerHour {
		return deny(domain.DenialCapacityParties,
			fmt.Sprintf("hour already has %d of %d parties", len(active), *rule.MaxPartiesPerHour)), nil
	}
	if rule.MaxCoversPerHour != nil && covers+partySize > *rule.MaxCoversPerHour {
		return deny(domain.DenialCapacityCovers,
			fmt.Sprintf("hour has %d covers, adding %d exceeds %d", covers, partySize, *rule.MaxCoversPerHour)), nil
	}
	return nil, nil
}

// parseClockMinutes converts "HH:MM" to minutes since local midnight.
// "24:00" is accepted as a closing time meaning end of day.
func parseClockMinutes(value string) (int, error) {
	if value == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid clock time %q", apperrors.ErrValidation, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}
