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
	"github.com/tablewise/table_reservation_app/internal/utils"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

var (
	ErrIllegalTransition = errors.New("illegal reservation transition")
	ErrCancelCutoff      = errors.New("cancellation cutoff has passed")
)

// reminderLead is how long before the visit the pre-visit reminder fires.
// Bookings closer in than the lead get no reminder at all.
const reminderLead = 24 * time.Hour

// reservationService owns the reservation lifecycle. Every transition is a
// guarded update: the expected current status rides along and a lost race
// surfaces as ErrConflict instead of a double-applied transition.
type reservationService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
	branchRepo      portsrepo.BranchRepositoryFacade
	policyRepo      portsrepo.PolicyRepositoryFacade
	reminderRepo    portsrepo.ReminderRepositoryFacade
	logRepo         portsrepo.AutomationLogRepositoryFacade
	depositSvc      portssvc.DepositSvcFacade
	capacitySvc     portssvc.CapacitySvcFacade
	scheduleSvc     portssvc.ScheduleSvcFacade
	waitlistSvc     portssvc.WaitlistSvcFacade
	notificationSvc portssvc.NotificationSvcFacade
	clk             clock.Clock
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	reservationRepo portsrepo.ReservationRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	policyRepo portsrepo.PolicyRepositoryFacade,
	reminderRepo portsrepo.ReminderRepositoryFacade,
	logRepo portsrepo.AutomationLogRepositoryFacade,
	depositSvc portssvc.DepositSvcFacade,
	capacitySvc portssvc.CapacitySvcFacade,
	scheduleSvc portssvc.ScheduleSvcFacade,
	waitlistSvc portssvc.WaitlistSvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	clk clock.Clock,
) portssvc.ReservationSvcFacade {
	return &reservationService{
		reservationRepo: reservationRepo,
		branchRepo:      branchRepo,
		policyRepo:      policyRepo,
		reminderRepo:    reminderRepo,
		logRepo:         logRepo,
		depositSvc:      depositSvc,
		capacitySvc:     capacitySvc,
		scheduleSvc:     scheduleSvc,
		waitlistSvc:     waitlistSvc,
		notificationSvc: notificationSvc,
		clk:             clk,
	}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

func (s *reservationService) CreateReservation(ctx context.Context, orgID string, req dto.CreateReservationRequest, actorID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clk.Now()

	start := req.StartAt.UTC()
	end := req.EndAt.UTC()
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: startAt must be before endAt", apperrors.ErrValidation)
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, orgID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive {
		return nil, fmt.Errorf("%w: branch is not accepting reservations", apperrors.ErrConflict)
	}

	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if req.PartySize > policy.MaxPartySize {
		return nil, fmt.Errorf("%w: party size %d exceeds the maximum of %d", apperrors.ErrValidation, req.PartySize, policy.MaxPartySize)
	}
	leadTime := time.Duration(policy.LeadTimeMinutes) * time.Minute
	if start.Before(now.Add(leadTime)) {
		return nil, fmt.Errorf("%w: reservations need at least %d minutes notice", apperrors.ErrValidation, policy.LeadTimeMinutes)
	}

	reservationID := uuid.NewString()
	if err := s.checkAdmissibility(ctx, orgID, req.BranchID, req.TableID, req.PartySize, start, end, nil); err != nil {
		return nil, err
	}

	autoCancelAt := now.Add(time.Duration(policy.HoldExpiryMinutes) * time.Minute)
	reservation := domain.Reservation{
		ReservationID: reservationID,
		OrgID:         orgID,
		BranchID:      req.BranchID,
		TableID:       req.TableID,
		GuestName:     req.GuestName,
		GuestPhone:    req.GuestPhone,
		PartySize:     req.PartySize,
		StartAt:       start,
		EndAt:         end,
		Status:        domain.ReservationHeld,
		DepositStatus: domain.DepositNone,
		AutoCancelAt:  &autoCancelAt,
		Notes:         req.Notes,
		AuditFields:   newAudit(now, actorID),
	}
	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("saving reservation: %w", err)
	}

	if depositAmount := s.depositAmountFor(policy, req.DepositAmount); depositAmount != nil {
		currency := req.CurrencyCode
		if currency == "" {
			currency = defaultCurrencyCode
		}
		if _, err := s.depositSvc.RequireDeposit(ctx, orgID, reservationID, dto.RequireDepositRequest{
			Amount:       *depositAmount,
			CurrencyCode: currency,
		}, actorID); err != nil {
			return nil, fmt.Errorf("attaching deposit: %w", err)
		}
		reservation.DepositStatus = domain.DepositRequired
	}

	if policy.ReminderEnabled {
		s.scheduleReminder(ctx, &reservation, now)
	}

	recordAction(ctx, s.logRepo, now, orgID, &reservation.BranchID, "reservation", reservationID,
		domain.ActionReservationCreated, "", string(domain.ReservationHeld),
		fmt.Sprintf("party of %d, %s to %s", req.PartySize, start.Format(time.RFC3339), end.Format(time.RFC3339)), actorID)
	s.notify(ctx, &reservation, "RESERVATION_CREATED")

	logger.Info("Reservation created", "reservation_id", reservationID, "branch_id", req.BranchID, "party_size", req.PartySize)
	return &reservation, nil
}

func (s *reservationService) GetReservation(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error) {
	return s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
}

func (s *reservationService) ListReservations(ctx context.Context, orgID string, branchID string, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	limit := utils.ClampLimit(params.Limit)
	reservations, next, err := s.reservationRepo.ListReservations(ctx, orgID, branchID, params.From, params.To, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListReservationsResponse{NextToken: next}
	for i := range reservations {
		resp.Reservations = append(resp.Reservations, dto.ToReservationResponse(&reservations[i]))
	}
	return resp, nil
}

func (s *reservationService) ConfirmReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if !before.CanTransitionTo(domain.ReservationConfirmed) {
		return nil, fmt.Errorf("%w: %w: %s -> CONFIRMED", apperrors.ErrConflict, ErrIllegalTransition, before)
	}

	now := s.clk.Now()
	updated := *reservation
	updated.Status = domain.ReservationConfirmed
	updated.AutoCancelAt = nil
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	// An outstanding deposit requirement is captured on confirm. Stands in
	// for real payment capture.
	if reservation.DepositStatus == domain.DepositRequired {
		paid, err := s.depositSvc.PayDeposit(ctx, orgID, reservationID, actorID)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Deposit capture on confirm failed", "reservation_id", reservationID, "error", err)
		} else {
			updated.DepositStatus = paid.Status
		}
	}

	recordAction(ctx, s.logRepo, now, orgID, &updated.BranchID, "reservation", reservationID,
		domain.ActionConfirmed, string(before), string(domain.ReservationConfirmed), "", actorID)
	s.notify(ctx, &updated, "RESERVATION_CONFIRMED")
	return &updated, nil
}

func (s *reservationService) SeatReservation(ctx context.Context, orgID string, reservationID string, orderID *string, actorID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if !before.CanTransitionTo(domain.ReservationSeated) {
		return nil, fmt.Errorf("%w: %w: %s -> SEATED", apperrors.ErrConflict, ErrIllegalTransition, before)
	}

	now := s.clk.Now()
	updated := *reservation
	if updated.TableID == nil {
		table, err := s.capacitySvc.FindAvailableTable(ctx, orgID, updated.BranchID, updated.PartySize, updated.StartAt, updated.EndAt)
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: no free table to seat the party", apperrors.ErrConflict)
			}
			return nil, err
		}
		updated.TableID = &table.TableID
	}
	updated.Status = domain.ReservationSeated
	updated.AutoCancelAt = nil
	updated.OrderID = orderID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	recordAction(ctx, s.logRepo, now, orgID, &updated.BranchID, "reservation", reservationID,
		domain.ActionSeated, string(before), string(domain.ReservationSeated), "", actorID)
	s.notify(ctx, &updated, "RESERVATION_SEATED")
	return &updated, nil
}

func (s *reservationService) CompleteReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if !before.CanTransitionTo(domain.ReservationCompleted) {
		return nil, fmt.Errorf("%w: %w: %s -> COMPLETED", apperrors.ErrConflict, ErrIllegalTransition, before)
	}

	now := s.clk.Now()
	updated := *reservation
	updated.Status = domain.ReservationCompleted
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	recordAction(ctx, s.logRepo, now, orgID, &updated.BranchID, "reservation", reservationID,
		domain.ActionCompleted, string(before), string(domain.ReservationCompleted), "", actorID)
	s.notify(ctx, &updated, "RESERVATION_COMPLETED")
	return &updated, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, orgID string, reservationID string, reason *string, actorID string, enforceCutoff bool) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if !before.CanTransitionTo(domain.ReservationCancelled) {
		return nil, fmt.Errorf("%w: %w: %s -> CANCELLED", apperrors.ErrConflict, ErrIllegalTransition, before)
	}

	now := s.clk.Now()
	if enforceCutoff {
		policy, err := resolvePolicy(ctx, s.policyRepo, orgID, reservation.BranchID)
		if err != nil {
			return nil, err
		}
		cutoff := reservation.StartAt.Add(-time.Duration(policy.CancelCutoffMinutes) * time.Minute)
		if now.After(cutoff) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrCancelCutoff)
		}
	}

	updated := *reservation
	updated.Status = domain.ReservationCancelled
	updated.AutoCancelAt = nil
	updated.CancellationReason = reason
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	// Settle any open deposit: a paid one is refunded in full, an unpaid
	// requirement is voided.
	switch reservation.DepositStatus {
	case domain.DepositRequired, domain.DepositPaid:
		settled, err := s.depositSvc.RefundDeposit(ctx, orgID, reservationID, nil, actorID)
		if err != nil {
			logger.Error("Deposit settlement on cancel failed", "reservation_id", reservationID, "error", err)
		} else {
			updated.DepositStatus = settled.Status
		}
	}

	recordAction(ctx, s.logRepo, now, orgID, &updated.BranchID, "reservation", reservationID,
		domain.ActionCancelled, string(before), string(domain.ReservationCancelled), derefOr(reason, ""), actorID)
	s.notify(ctx, &updated, "RESERVATION_CANCELLED")

	// The freed slot may admit a waiting party.
	if _, err := s.waitlistSvc.TryAutoPromote(ctx, orgID, updated.BranchID, domain.SystemActorID); err != nil {
		logger.Warn("Waitlist promotion after cancel failed", "branch_id", updated.BranchID, "error", err)
	}

	return &updated, nil
}

func (s *reservationService) MarkNoShow(ctx context.Context, orgID string, reservationID string, reason *string, actorID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if !before.CanTransitionTo(domain.ReservationNoShow) {
		return nil, fmt.Errorf("%w: %w: %s -> NO_SHOW", apperrors.ErrConflict, ErrIllegalTransition, before)
	}

	now := s.clk.Now()
	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, reservation.BranchID)
	if err != nil {
		return nil, err
	}
	graceEnd := reservation.StartAt.Add(time.Duration(policy.NoShowGraceMinutes) * time.Minute)
	pastGrace := !now.Before(graceEnd)

	updated := *reservation
	updated.Status = domain.ReservationNoShow
	updated.AutoCancelAt = nil
	updated.CancellationReason = reason
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	action := domain.ActionNoShowWithinGrace
	detail := fmt.Sprintf("grace ends %s", graceEnd.Format(time.RFC3339))
	if pastGrace {
		action = domain.ActionNoShowForfeited
		// Forfeiture only touches an unsettled deposit. Within grace the
		// deposit is left alone so staff can still refund it.
		switch reservation.DepositStatus {
		case domain.DepositRequired, domain.DepositPaid:
			settled, err := s.depositSvc.ForfeitDeposit(ctx, orgID, reservationID, actorID)
			if err != nil {
				logger.Error("Deposit forfeiture on no-show failed", "reservation_id", reservationID, "error", err)
			} else {
				updated.DepositStatus = settled.Status
				detail = "deposit forfeited"
			}
		default:
			detail = "no deposit to forfeit"
		}
	}

	recordAction(ctx, s.logRepo, now, orgID, &updated.BranchID, "reservation", reservationID,
		action, string(before), string(domain.ReservationNoShow), detail, actorID)
	s.notify(ctx, &updated, "RESERVATION_NO_SHOW")

	if _, err := s.waitlistSvc.TryAutoPromote(ctx, orgID, updated.BranchID, domain.SystemActorID); err != nil {
		logger.Warn("Waitlist promotion after no-show failed", "branch_id", updated.BranchID, "error", err)
	}

	return &updated, nil
}

func (s *reservationService) ModifyReservation(ctx context.Context, orgID string, reservationID string, req dto.ModifyReservationRequest, actorID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	before := reservation.Status
	if before != domain.ReservationHeld && before != domain.ReservationConfirmed {
		return nil, fmt.Errorf("%w: only held or confirmed reservations can be modified", apperrors.ErrConflict)
	}

	updated := *reservation
	if req.PartySize != nil {
		updated.PartySize = *req.PartySize
	}
	if req.StartAt != nil {
		updated.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		updated.EndAt = req.EndAt.UTC()
	}
	if req.ClearTable {
		updated.TableID = nil
	} else if req.TableID != nil {
		updated.TableID = req.TableID
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	if !updated.StartAt.Before(updated.EndAt) {
		return nil, fmt.Errorf("%w: startAt must be before endAt", apperrors.ErrValidation)
	}

	policy, err := resolvePolicy(ctx, s.policyRepo, orgID, updated.BranchID)
	if err != nil {
		return nil, err
	}
	if updated.PartySize > policy.MaxPartySize {
		return nil, fmt.Errorf("%w: party size %d exceeds the maximum of %d", apperrors.ErrValidation, updated.PartySize, policy.MaxPartySize)
	}

	if err := s.checkAdmissibility(ctx, orgID, updated.BranchID, updated.TableID, updated.PartySize, updated.StartAt, updated.EndAt, &reservationID); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.reservationRepo.UpdateReservationGuarded(ctx, updated, before); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Reservation modified", "reservation_id", reservationID)
	return &updated, nil
}

// checkAdmissibility runs the scheduling evaluator, the branch capacity
// ceiling and, when a table is requested, the table overlap check.
func (s *reservationService) checkAdmissibility(ctx context.Context, orgID, branchID string, tableID *string, partySize int, start, end time.Time, excludeReservationID *string) error {
	decision, err := s.scheduleSvc.EvaluateWindow(ctx, orgID, branchID, start, end, partySize, excludeReservationID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrConflict, decision.Code, decision.Reason)
	}

	capacity, err := s.capacitySvc.CheckCapacity(ctx, orgID, branchID, start, end, partySize, excludeReservationID)
	if err != nil {
		return err
	}
	if !capacity.Allowed {
		return fmt.Errorf("%w: branch capacity ceiling reached for the requested slot", apperrors.ErrConflict)
	}

	if tableID != nil {
		table, err := s.branchRepo.FindTableByID(ctx, orgID, *tableID)
		if err != nil {
			return err
		}
		if table.BranchID != branchID {
			return fmt.Errorf("%w: table does not belong to the branch", apperrors.ErrValidation)
		}
		if !table.IsActive {
			return fmt.Errorf("%w: table is not active", apperrors.ErrValidation)
		}
		if table.Capacity < partySize {
			return fmt.Errorf("%w: table seats %d, party is %d", apperrors.ErrValidation, table.Capacity, partySize)
		}
		free, err := s.capacitySvc.IsTableAvailable(ctx, orgID, *tableID, start, end, excludeReservationID)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: table is already booked for an overlapping window", apperrors.ErrConflict)
		}
	}
	return nil
}

// depositAmountFor picks the deposit to attach on creation: the policy wins
// when deposits are mandatory, otherwise an explicit request amount is used.
func (s *reservationService) depositAmountFor(policy domain.ReservationPolicy, requested *decimal.Decimal) *decimal.Decimal {
	if policy.DepositRequired && policy.DepositAmount.IsPositive() {
		amount := policy.DepositAmount
		return &amount
	}
	if requested != nil && requested.IsPositive() {
		return requested
	}
	return nil
}

// scheduleReminder queues the pre-visit reminder at startAt minus the lead.
// Only bookings whose gap to startAt exceeds the lead get one; anything
// closer would fire immediately or in the past. Best-effort.
func (s *reservationService) scheduleReminder(ctx context.Context, reservation *domain.Reservation, now time.Time) {
	scheduledAt := reservation.StartAt.Add(-reminderLead)
	if !scheduledAt.After(now) {
		return
	}
	reminder := domain.ReservationReminder{
		ReminderID:    uuid.NewString(),
		OrgID:         reservation.OrgID,
		BranchID:      reservation.BranchID,
		ReservationID: reservation.ReservationID,
		ScheduledAt:   scheduledAt,
		CreatedAt:     now,
	}
	if err := s.reminderRepo.SaveReminder(ctx, reminder); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to schedule reminder",
			"reservation_id", reservation.ReservationID, "error", err)
	}
}

// notify emits a fire-and-forget notification for a lifecycle event.
func (s *reservationService) notify(ctx context.Context, reservation *domain.Reservation, event string) {
	_, err := s.notificationSvc.Send(ctx, dto.SendNotificationInput{
		OrgID:         reservation.OrgID,
		BranchID:      &reservation.BranchID,
		ReservationID: &reservation.ReservationID,
		Type:          string(domain.NotificationLog),
		Event:         event,
		Payload:       fmt.Sprintf("%s for party of %d at %s", event, reservation.PartySize, reservation.StartAt.Format(time.RFC3339)),
	})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification send failed",
			"reservation_id", reservation.ReservationID, "event", event, "error", err)
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
