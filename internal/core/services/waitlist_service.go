package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// waitlistService manages walk-in waitlists. Promotion writes the reservation
// through the repository directly rather than the reservation service: a
// promoted entry skips the HELD stage and the lead-time rule by design, and
// the capacity checks still run through the capacity facade.
type waitlistService struct {
	waitlistRepo    portsrepo.WaitlistRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	policyRepo      portsrepo.PolicyRepositoryFacade
	logRepo         portsrepo.AutomationLogRepositoryFacade
	capacitySvc     portssvc.CapacitySvcFacade
	notificationSvc portssvc.NotificationSvcFacade
	clk             clock.Clock
}

// NewWaitlistService creates a new WaitlistService.
func NewWaitlistService(
	waitlistRepo portsrepo.WaitlistRepositoryFacade,
	reservationRepo portsrepo.ReservationRepositoryFacade,
	policyRepo portsrepo.PolicyRepositoryFacade,
	logRepo portsrepo.AutomationLogRepositoryFacade,
	capacitySvc portssvc.CapacitySvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	clk clock.Clock,
) portssvc.WaitlistSvcFacade {
	return &waitlistService{
		waitlistRepo:    waitlistRepo,
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		logRepo:         logRepo,
		capacitySvc:     capacitySvc,
		notificationSvc: notificationSvc,
		clk:             clk,
	}
}

var _ portssvc.WaitlistSvcFacade = (*waitlistService)(nil)

func (s *waitlistService) JoinWaitlist(ctx context.Context, orgID string, req dto.JoinWaitlistRequest, actorID string) (*domain.WaitlistEntry, error) {
	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if req.PartySize > policy.MaxPartySize {
		return nil, fmt.Errorf("%w: party size %d exceeds the maximum of %d", apperrors.ErrValidation, req.PartySize, policy.MaxPartySize)
	}

	now := s.clk.Now()
	entry := domain.WaitlistEntry{
		WaitlistID:  uuid.NewString(),
		OrgID:       orgID,
		BranchID:    req.BranchID,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		PartySize:   req.PartySize,
		Status:      domain.WaitlistWaiting,
		Notes:       req.Notes,
		AuditFields: newAudit(now, actorID),
	}
	if err := s.waitlistRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving waitlist entry: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Waitlist joined",
		"waitlist_id", entry.WaitlistID, "branch_id", req.BranchID, "party_size", req.PartySize)
	return &entry, nil
}

func (s *waitlistService) WithdrawEntry(ctx context.Context, orgID string, waitlistID string, actorID string) (*domain.WaitlistEntry, error) {
	entry, err := s.waitlistRepo.FindEntryByID(ctx, orgID, waitlistID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.WaitlistWaiting {
		return nil, fmt.Errorf("%w: waitlist entry is %s", apperrors.ErrConflict, entry.Status)
	}

	now := s.clk.Now()
	updated := *entry
	updated.Status = domain.WaitlistCancelled
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.waitlistRepo.UpdateEntryGuarded(ctx, updated, domain.WaitlistWaiting); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *waitlistService) ListWaitlist(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	return s.waitlistRepo.ListEntries(ctx, orgID, branchID, status)
}

func (s *waitlistService) TryAutoPromote(ctx context.Context, orgID string, branchID string, actorID string) (*string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, branchID)
	if err != nil {
		return nil, err
	}
	if !policy.WaitlistAutoPromote {
		return nil, nil
	}

	entry, err := s.waitlistRepo.FindOldestWaiting(ctx, orgID, branchID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding oldest waiting entry: %w", err)
	}

	now := s.clk.Now()
	start := now
	end := now.Add(time.Duration(policy.PromotionWindowMinutes) * time.Minute)

	table, err := s.capacitySvc.FindAvailableTable(ctx, orgID, branchID, entry.PartySize, start, end)
	if err != nil {
		if isNotFound(err) {
			// No table frees up: the entry stays WAITING for the next attempt.
			return nil, nil
		}
		return nil, err
	}

	reservationID := uuid.NewString()

	// Flip the entry first. The guard makes concurrent promoters lose
	// cleanly: only the winner goes on to create the reservation.
	promoted := *entry
	promoted.Status = domain.WaitlistSeated
	promoted.PromotedToReservationID = &reservationID
	promoted.LastUpdatedAt = now
	promoted.LastUpdatedBy = actorID
	if err := s.waitlistRepo.UpdateEntryGuarded(ctx, promoted, domain.WaitlistWaiting); err != nil {
		if isConflict(err) {
			return nil, nil
		}
		return nil, err
	}

	reservation := domain.Reservation{
		ReservationID: reservationID,
		OrgID:         orgID,
		BranchID:      branchID,
		TableID:       &table.TableID,
		GuestName:     entry.GuestName,
		GuestPhone:    entry.GuestPhone,
		PartySize:     entry.PartySize,
		StartAt:       start,
		EndAt:         end,
		Status:        domain.ReservationConfirmed,
		DepositStatus: domain.DepositNone,
		Notes:         entry.Notes,
		AuditFields:   newAudit(now, actorID),
	}
	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		logger.Error("Promotion reservation save failed after entry flip",
			"waitlist_id", entry.WaitlistID, "reservation_id", reservationID, "error", err)
		return nil, fmt.Errorf("saving promoted reservation: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &branchID, "waitlist", entry.WaitlistID,
		domain.ActionWaitlistPromoted, string(domain.WaitlistWaiting), string(domain.WaitlistSeated),
		fmt.Sprintf("reservation %s on table %s", reservationID, table.TableID), actorID)

	if _, err := s.notificationSvc.Send(ctx, dto.SendNotificationInput{
		OrgID:         orgID,
		BranchID:      &branchID,
		ReservationID: &reservationID,
		WaitlistID:    &entry.WaitlistID,
		Type:          string(domain.NotificationLog),
		Event:         "WAITLIST_PROMOTED",
		Payload:       fmt.Sprintf("party of %d promoted to table %s", entry.PartySize, table.Name),
	}); err != nil {
		logger.Warn("Promotion notification failed", "waitlist_id", entry.WaitlistID, "error", err)
	}

	logger.Info("Waitlist entry promoted",
		"waitlist_id", entry.WaitlistID, "reservation_id", reservationID, "table_id", table.TableID)
	return &reservationID, nil
}
