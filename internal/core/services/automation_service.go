package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/internal/utils"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

const (
	scanBatchSize = 100

	// reminderDuplicateWindow bounds the duplicate-notification guard used
	// when overlapping ticks race on the same reminder.
	reminderDuplicateWindow = 24 * time.Hour
)

// automationService is the periodic automation engine. Scans are idempotent
// by construction: acting on an item removes it from the next scan's
// selection set (a cancelled hold is no longer HELD, a sent reminder is no
// longer unsent), and guarded updates make concurrent ticks lose cleanly
// instead of double-applying.
type automationService struct {
	reservationRepo  portsrepo.ReservationRepositoryFacade
	reminderRepo     portsrepo.ReminderRepositoryFacade
	waitlistRepo     portsrepo.WaitlistRepositoryFacade
	policyRepo       portsrepo.PolicyRepositoryFacade
	notificationRepo portsrepo.NotificationRepositoryFacade
	logRepo          portsrepo.AutomationLogRepositoryFacade
	reservationSvc   portssvc.ReservationSvcFacade
	waitlistSvc      portssvc.WaitlistSvcFacade
	notificationSvc  portssvc.NotificationSvcFacade
	clk              clock.Clock
}

// NewAutomationService creates a new AutomationService.
func NewAutomationService(
	reservationRepo portsrepo.ReservationRepositoryFacade,
	reminderRepo portsrepo.ReminderRepositoryFacade,
	waitlistRepo portsrepo.WaitlistRepositoryFacade,
	policyRepo portsrepo.PolicyRepositoryFacade,
	notificationRepo portsrepo.NotificationRepositoryFacade,
	logRepo portsrepo.AutomationLogRepositoryFacade,
	reservationSvc portssvc.ReservationSvcFacade,
	waitlistSvc portssvc.WaitlistSvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	clk clock.Clock,
) portssvc.AutomationSvcFacade {
	return &automationService{
		reservationRepo:  reservationRepo,
		reminderRepo:     reminderRepo,
		waitlistRepo:     waitlistRepo,
		policyRepo:       policyRepo,
		notificationRepo: notificationRepo,
		logRepo:          logRepo,
		reservationSvc:   reservationSvc,
		waitlistSvc:      waitlistSvc,
		notificationSvc:  notificationSvc,
		clk:              clk,
	}
}

var _ portssvc.AutomationSvcFacade = (*automationService)(nil)

func (s *automationService) RunAll(ctx context.Context) *dto.TickResult {
	result := &dto.TickResult{}

	expired, failures := s.RunHoldExpiry(ctx)
	result.HoldsExpired = expired
	result.Errors += failures

	sent, suppressed, failures := s.RunReminders(ctx)
	result.RemindersSent = sent
	result.RemindersSuppressed = suppressed
	result.Errors += failures

	promoted, failures := s.RunWaitlistPromotion(ctx)
	result.WaitlistPromoted = promoted
	result.Errors += failures

	return result
}

func (s *automationService) RunHoldExpiry(ctx context.Context) (int, int) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clk.Now()

	holds, err := s.reservationRepo.ListExpiredHolds(ctx, now, scanBatchSize)
	if err != nil {
		logger.Error("Hold expiry scan failed", "error", err)
		return 0, 1
	}

	expired, failures := 0, 0
	for _, hold := range holds {
		// Drain promptly on shutdown; the rest of the batch reappears in
		// the next tick's selection.
		if ctx.Err() != nil {
			return expired, failures
		}
		policy, err := resolvePolicy(ctx, s.policyRepo, hold.OrgID, hold.BranchID)
		if err != nil {
			logger.Error("Hold expiry policy lookup failed", "reservation_id", hold.ReservationID, "error", err)
			failures++
			continue
		}
		if !policy.AutoExpireHeldEnabled {
			continue
		}

		reason := "hold expired without confirmation"
		if _, err := s.reservationSvc.CancelReservation(ctx, hold.OrgID, hold.ReservationID, &reason, domain.SystemActorID, false); err != nil {
			// A concurrent confirm or a parallel tick won the race; the row
			// has already left the selection set.
			if isConflict(err) || isNotFound(err) {
				continue
			}
			logger.Error("Hold expiry cancel failed", "reservation_id", hold.ReservationID, "error", err)
			failures++
			continue
		}

		recordAction(ctx, s.logRepo, now, hold.OrgID, &hold.BranchID, "reservation", hold.ReservationID,
			domain.ActionHoldExpired, string(domain.ReservationHeld), string(domain.ReservationCancelled),
			fmt.Sprintf("autoCancelAt %s", hold.AutoCancelAt.Format(time.RFC3339)), domain.SystemActorID)
		expired++
	}

	if expired > 0 || failures > 0 {
		logger.Info("Hold expiry scan done", "expired", expired, "failures", failures)
	}
	return expired, failures
}

func (s *automationService) RunReminders(ctx context.Context) (int, int, int) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clk.Now()

	due, err := s.reminderRepo.ListDueReminders(ctx, now, scanBatchSize)
	if err != nil {
		logger.Error("Reminder scan failed", "error", err)
		return 0, 0, 1
	}

	sent, suppressed, failures := 0, 0, 0
	for _, reminder := range due {
		if ctx.Err() != nil {
			return sent, suppressed, failures
		}
		outcome, err := s.fireReminder(ctx, reminder, now)
		if err != nil {
			logger.Error("Reminder processing failed", "reminder_id", reminder.ReminderID, "error", err)
			failures++
			continue
		}
		switch outcome {
		case reminderSent:
			sent++
		case reminderSuppressed:
			suppressed++
		}
	}

	if sent > 0 || suppressed > 0 || failures > 0 {
		logger.Info("Reminder scan done", "sent", sent, "suppressed", suppressed, "failures", failures)
	}
	return sent, suppressed, failures
}

type reminderOutcome int

const (
	reminderSkipped reminderOutcome = iota
	reminderSent
	reminderSuppressed
)

func (s *automationService) fireReminder(ctx context.Context, reminder domain.ReservationReminder, now time.Time) (reminderOutcome, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, reminder.OrgID, reminder.ReservationID)
	if err != nil {
		if isNotFound(err) {
			// Reservation gone; retire the reminder so it stops scanning.
			return s.suppress(ctx, reminder, now, "reservation no longer exists")
		}
		return reminderSkipped, err
	}

	// Stale reminders: the reservation left the book or the visit already
	// started. Mark sent so the row drops out of future scans, but record it
	// as suppressed rather than delivered.
	active := reservation.Status == domain.ReservationHeld || reservation.Status == domain.ReservationConfirmed
	if !active || !now.Before(reservation.StartAt) {
		return s.suppress(ctx, reminder, now, fmt.Sprintf("reservation is %s", reservation.Status))
	}

	// Duplicate guard against overlapping ticks that both loaded the row
	// before either marked it.
	dup, err := s.notificationRepo.HasRecentNotification(ctx, reminder.OrgID, reminder.ReservationID, "RESERVATION_REMINDER", now.Add(-reminderDuplicateWindow))
	if err != nil {
		return reminderSkipped, err
	}
	if dup {
		return s.suppress(ctx, reminder, now, "reminder already delivered")
	}

	if err := s.reminderRepo.MarkReminderSent(ctx, reminder.ReminderID, now); err != nil {
		if isConflict(err) {
			// A parallel tick marked it first.
			return reminderSkipped, nil
		}
		return reminderSkipped, err
	}

	if _, err := s.notificationSvc.Send(ctx, dto.SendNotificationInput{
		OrgID:         reminder.OrgID,
		BranchID:      &reminder.BranchID,
		ReservationID: &reminder.ReservationID,
		Type:          string(domain.NotificationLog),
		Event:         "RESERVATION_REMINDER",
		Payload:       fmt.Sprintf("reminder: party of %d expected at %s", reservation.PartySize, reservation.StartAt.Format(time.RFC3339)),
	}); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Reminder notification failed", "reminder_id", reminder.ReminderID, "error", err)
	}

	recordAction(ctx, s.logRepo, now, reminder.OrgID, &reminder.BranchID, "reminder", reminder.ReminderID,
		domain.ActionReminderSent, "", "", fmt.Sprintf("reservation %s", reminder.ReservationID), domain.SystemActorID)
	return reminderSent, nil
}

func (s *automationService) suppress(ctx context.Context, reminder domain.ReservationReminder, now time.Time, detail string) (reminderOutcome, error) {
	if err := s.reminderRepo.MarkReminderSent(ctx, reminder.ReminderID, now); err != nil {
		if isConflict(err) {
			return reminderSkipped, nil
		}
		return reminderSkipped, err
	}
	recordAction(ctx, s.logRepo, now, reminder.OrgID, &reminder.BranchID, "reminder", reminder.ReminderID,
		domain.ActionReminderSuppressed, "", "", detail, domain.SystemActorID)
	return reminderSuppressed, nil
}

func (s *automationService) RunWaitlistPromotion(ctx context.Context) (int, int) {
	logger := middleware.GetLoggerFromCtx(ctx)

	branches, err := s.waitlistRepo.ListBranchesWithWaiting(ctx)
	if err != nil {
		logger.Error("Waitlist promotion scan failed", "error", err)
		return 0, 1
	}

	promoted, failures := 0, 0
	for _, branch := range branches {
		// Drain as many entries as tables allow this tick, bounded so one
		// busy branch cannot monopolize the scan.
		for i := 0; i < scanBatchSize; i++ {
			if ctx.Err() != nil {
				return promoted, failures
			}
			reservationID, err := s.waitlistSvc.TryAutoPromote(ctx, branch.OrgID, branch.BranchID, domain.SystemActorID)
			if err != nil {
				logger.Error("Waitlist promotion failed", "branch_id", branch.BranchID, "error", err)
				failures++
				break
			}
			if reservationID == nil {
				break
			}
			promoted++
		}
	}

	if promoted > 0 || failures > 0 {
		logger.Info("Waitlist promotion scan done", "promoted", promoted, "failures", failures)
	}
	return promoted, failures
}

func (s *automationService) GetAutomationLogs(ctx context.Context, orgID string, params dto.ListLogsParams) (*dto.ListLogsResponse, error) {
	filter := portsrepo.ListLogsFilter{
		BranchID:   params.BranchID,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Action:     params.Action,
		From:       params.From,
		To:         params.To,
	}
	logs, next, err := s.logRepo.ListLogs(ctx, orgID, filter, utils.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListLogsResponse{NextToken: next}
	for i := range logs {
		resp.Logs = append(resp.Logs, dto.ToAutomationLogResponse(&logs[i]))
	}
	return resp, nil
}
