package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/internal/utils/accounting"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

var ErrDepositAlreadySettled = errors.New("deposit has already been settled")

const defaultCurrencyCode = "EUR"

// depositService drives the deposit DAG and posts the matching ledger
// entries. Every settling transition goes through the repository's
// SettleDeposit, which writes the journal, the deposit row and the
// reservation's mirrored status in one database transaction, guarded by the
// expected current status.
type depositService struct {
	depositRepo     portsrepo.DepositRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	logRepo         portsrepo.AutomationLogRepositoryFacade
	clk             clock.Clock
}

// NewDepositService creates a new DepositService.
func NewDepositService(depositRepo portsrepo.DepositRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade, accountSvc portssvc.AccountSvcFacade, logRepo portsrepo.AutomationLogRepositoryFacade, clk clock.Clock) portssvc.DepositSvcFacade {
	return &depositService{
		depositRepo:     depositRepo,
		reservationRepo: reservationRepo,
		accountSvc:      accountSvc,
		logRepo:         logRepo,
		clk:             clk,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

func (s *depositService) RequireDeposit(ctx context.Context, orgID string, reservationID string, req dto.RequireDepositRequest, actorID string) (*domain.ReservationDeposit, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	reservation, err := s.reservationRepo.FindReservationByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot require a deposit on a %s reservation", apperrors.ErrConflict, reservation.Status)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	now := s.clk.Now()
	deposit := domain.ReservationDeposit{
		DepositID:     uuid.NewString(),
		OrgID:         orgID,
		BranchID:      reservation.BranchID,
		ReservationID: reservationID,
		Amount:        req.Amount,
		CurrencyCode:  currency,
		Status:        domain.DepositRequired,
		AuditFields:   newAudit(now, actorID),
	}
	if err := s.depositRepo.SaveDeposit(ctx, deposit); err != nil {
		return nil, fmt.Errorf("saving deposit: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &reservation.BranchID, "deposit", deposit.DepositID,
		domain.ActionDepositRequired, string(domain.DepositNone), string(domain.DepositRequired),
		fmt.Sprintf("reservation %s, amount %s %s", reservationID, req.Amount, currency), actorID)

	middleware.GetLoggerFromCtx(ctx).Info("Deposit required",
		"deposit_id", deposit.DepositID, "reservation_id", reservationID, "amount", req.Amount)
	return &deposit, nil
}

func (s *depositService) PayDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error) {
	deposit, err := s.depositRepo.FindDepositByReservationID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(deposit, domain.DepositPaid); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	journal, lines, changes, err := s.buildPosting(ctx, deposit, actorID, postingSpec{
		description: fmt.Sprintf("Deposit received for reservation %s", reservationID),
		debits:      []postingLeg{{kind: domain.KindCash, amount: deposit.Amount}},
		credits:     []postingLeg{{kind: domain.KindDepositsHeld, amount: deposit.Amount}},
	})
	if err != nil {
		return nil, err
	}

	updated := *deposit
	updated.Status = domain.DepositPaid
	updated.JournalID = &journal.JournalID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositRequired, journal, lines, changes); err != nil {
		return nil, fmt.Errorf("settling deposit payment: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
		domain.ActionDepositPaid, string(domain.DepositRequired), string(domain.DepositPaid),
		fmt.Sprintf("journal %s", journal.JournalID), actorID)
	return &updated, nil
}

func (s *depositService) RefundDeposit(ctx context.Context, orgID string, reservationID string, amount *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error) {
	deposit, err := s.depositRepo.FindDepositByReservationID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(deposit, domain.DepositRefunded); err != nil {
		return nil, err
	}

	now := s.clk.Now()

	// A never-paid requirement is voided without touching the ledger; no
	// funds were ever held.
	if deposit.Status == domain.DepositRequired {
		updated := *deposit
		updated.Status = domain.DepositRefunded
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = actorID
		if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositRequired, nil, nil, nil); err != nil {
			return nil, fmt.Errorf("voiding deposit: %w", err)
		}
		recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
			domain.ActionDepositRefunded, string(domain.DepositRequired), string(domain.DepositRefunded),
			"voided before payment", actorID)
		return &updated, nil
	}

	refund := deposit.Amount
	if amount != nil {
		refund = *amount
	}
	if !refund.IsPositive() || refund.GreaterThan(deposit.Amount) {
		return nil, fmt.Errorf("%w: refund must be positive and at most the deposit amount %s", apperrors.ErrValidation, deposit.Amount)
	}

	journal, lines, changes, err := s.buildPosting(ctx, deposit, actorID, postingSpec{
		description:       fmt.Sprintf("Deposit refund for reservation %s", reservationID),
		reversesJournalID: deposit.JournalID,
		debits:            []postingLeg{{kind: domain.KindDepositsHeld, amount: refund}},
		credits:           []postingLeg{{kind: domain.KindCash, amount: refund}},
	})
	if err != nil {
		return nil, err
	}

	updated := *deposit
	updated.Status = domain.DepositRefunded
	updated.RefundJournalID = &journal.JournalID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositPaid, journal, lines, changes); err != nil {
		return nil, fmt.Errorf("settling deposit refund: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
		domain.ActionDepositRefunded, string(domain.DepositPaid), string(domain.DepositRefunded),
		fmt.Sprintf("journal %s, refunded %s", journal.JournalID, refund), actorID)
	return &updated, nil
}

func (s *depositService) ApplyDeposit(ctx context.Context, orgID string, reservationID string, refundPortion *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error) {
	deposit, err := s.depositRepo.FindDepositByReservationID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(deposit, domain.DepositApplied); err != nil {
		return nil, err
	}
	if deposit.Status != domain.DepositPaid {
		return nil, fmt.Errorf("%w: only a paid deposit can be applied", apperrors.ErrConflict)
	}

	refund := decimal.Zero
	if refundPortion != nil {
		refund = *refundPortion
	}
	if refund.IsNegative() || refund.GreaterThanOrEqual(deposit.Amount) {
		return nil, fmt.Errorf("%w: refund portion must be in [0, %s)", apperrors.ErrValidation, deposit.Amount)
	}
	revenue := deposit.Amount.Sub(refund)

	credits := []postingLeg{{kind: domain.KindDepositRev, amount: revenue}}
	if refund.IsPositive() {
		credits = append(credits, postingLeg{kind: domain.KindCash, amount: refund})
	}
	now := s.clk.Now()
	journal, lines, changes, err := s.buildPosting(ctx, deposit, actorID, postingSpec{
		description: fmt.Sprintf("Deposit applied to bill for reservation %s", reservationID),
		debits:      []postingLeg{{kind: domain.KindDepositsHeld, amount: deposit.Amount}},
		credits:     credits,
	})
	if err != nil {
		return nil, err
	}

	updated := *deposit
	updated.Status = domain.DepositApplied
	updated.ApplyJournalID = &journal.JournalID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositPaid, journal, lines, changes); err != nil {
		return nil, fmt.Errorf("settling deposit application: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
		domain.ActionDepositApplied, string(domain.DepositPaid), string(domain.DepositApplied),
		fmt.Sprintf("journal %s, revenue %s, refunded %s", journal.JournalID, revenue, refund), actorID)
	return &updated, nil
}

func (s *depositService) ForfeitDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error) {
	deposit, err := s.depositRepo.FindDepositByReservationID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(deposit, domain.DepositForfeited); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	before := deposit.Status

	updated := *deposit
	updated.Status = domain.DepositForfeited
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if before == domain.DepositRequired {
		// Nothing was ever collected, so there is no entry to post.
		if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositRequired, nil, nil, nil); err != nil {
			return nil, fmt.Errorf("forfeiting unpaid deposit: %w", err)
		}
		recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
			domain.ActionDepositForfeited, string(before), string(domain.DepositForfeited),
			"forfeited before payment", actorID)
		return &updated, nil
	}

	journal, lines, changes, err := s.buildPosting(ctx, deposit, actorID, postingSpec{
		description: fmt.Sprintf("Deposit forfeited for reservation %s", reservationID),
		debits:      []postingLeg{{kind: domain.KindDepositsHeld, amount: deposit.Amount}},
		credits:     []postingLeg{{kind: domain.KindNoShowRevenue, amount: deposit.Amount}},
	})
	if err != nil {
		return nil, err
	}
	updated.ApplyJournalID = &journal.JournalID

	if err := s.depositRepo.SettleDeposit(ctx, updated, domain.DepositPaid, journal, lines, changes); err != nil {
		return nil, fmt.Errorf("settling deposit forfeiture: %w", err)
	}

	recordAction(ctx, s.logRepo, now, orgID, &deposit.BranchID, "deposit", deposit.DepositID,
		domain.ActionDepositForfeited, string(before), string(domain.DepositForfeited),
		fmt.Sprintf("journal %s", journal.JournalID), actorID)
	return &updated, nil
}

func (s *depositService) GetDepositByReservation(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error) {
	return s.depositRepo.FindDepositByReservationID(ctx, orgID, reservationID)
}

func (s *depositService) checkTransition(deposit *domain.ReservationDeposit, target domain.DepositStatus) error {
	if deposit.Status.IsSettled() {
		return fmt.Errorf("%w: %w: deposit is %s", apperrors.ErrConflict, ErrDepositAlreadySettled, deposit.Status)
	}
	if !deposit.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: deposit cannot move from %s to %s", apperrors.ErrConflict, deposit.Status, target)
	}
	return nil
}

// postingLeg is one side-entry of a deposit posting, named by account kind.
type postingLeg struct {
	kind   domain.AccountKind
	amount decimal.Decimal
}

type postingSpec struct {
	description       string
	reversesJournalID *string
	debits            []postingLeg
	credits           []postingLeg
}

// buildPosting resolves the involved system accounts and assembles a
// balanced journal with its lines and balance deltas. Nothing is persisted
// here; SettleDeposit writes it all atomically.
func (s *depositService) buildPosting(ctx context.Context, deposit *domain.ReservationDeposit, actorID string, spec postingSpec) (*domain.Journal, []domain.JournalLine, map[string]decimal.Decimal, error) {
	now := s.clk.Now()
	journalID := uuid.NewString()

	accounts := make(map[string]domain.Account)
	var lines []domain.JournalLine

	appendLeg := func(leg postingLeg, txType domain.TransactionType) error {
		account, err := s.accountSvc.ResolveSystemAccount(ctx, deposit.OrgID, deposit.BranchID, leg.kind, deposit.CurrencyCode, actorID)
		if err != nil {
			return err
		}
		accounts[account.AccountID] = *account
		lines = append(lines, domain.JournalLine{
			LineID:          uuid.NewString(),
			JournalID:       journalID,
			AccountID:       account.AccountID,
			Amount:          leg.amount,
			TransactionType: txType,
			CurrencyCode:    deposit.CurrencyCode,
			Notes:           spec.description,
			AuditFields:     newAudit(now, actorID),
		})
		return nil
	}

	for _, leg := range spec.debits {
		if err := appendLeg(leg, domain.Debit); err != nil {
			return nil, nil, nil, err
		}
	}
	for _, leg := range spec.credits {
		if err := appendLeg(leg, domain.Credit); err != nil {
			return nil, nil, nil, err
		}
	}

	if err := accounting.ValidateBalanced(lines); err != nil {
		return nil, nil, nil, err
	}
	changes, err := accounting.ComputeBalanceChanges(lines, accounts)
	if err != nil {
		return nil, nil, nil, err
	}

	journal := &domain.Journal{
		JournalID:         journalID,
		OrgID:             deposit.OrgID,
		BranchID:          deposit.BranchID,
		JournalDate:       now,
		Description:       spec.description,
		CurrencyCode:      deposit.CurrencyCode,
		Status:            domain.Posted,
		Amount:            debitTotal(lines),
		ReversesJournalID: spec.reversesJournalID,
		AuditFields:       newAudit(now, actorID),
	}
	return journal, lines, changes, nil
}
