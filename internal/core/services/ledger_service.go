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
	"github.com/tablewise/table_reservation_app/internal/utils"
	"github.com/tablewise/table_reservation_app/internal/utils/accounting"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

var (
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrCurrencyMismatch   = errors.New("account currency does not match journal currency")
)

// ledgerService posts balanced journal entries against the chart of accounts.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	clk         clock.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, clk clock.Clock) portssvc.LedgerSvcFacade {
	return &ledgerService{journalRepo: journalRepo, accountRepo: accountRepo, clk: clk}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateJournal(ctx context.Context, orgID string, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clk.Now()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]struct{}, len(req.Lines))
	for _, in := range req.Lines {
		lines = append(lines, domain.JournalLine{
			LineID:          uuid.NewString(),
			JournalID:       journalID,
			AccountID:       in.AccountID,
			Amount:          in.Amount,
			TransactionType: domain.TransactionType(in.TransactionType),
			CurrencyCode:    req.CurrencyCode,
			Notes:           in.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
		if _, ok := seen[in.AccountID]; !ok {
			seen[in.AccountID] = struct{}{}
			accountIDs = append(accountIDs, in.AccountID)
		}
	}
	if len(accountIDs) < 2 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrJournalMinAccounts)
	}
	if err := accounting.ValidateBalanced(lines); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching journal accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if account.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: %w: account %s is %s, journal is %s",
				apperrors.ErrValidation, ErrCurrencyMismatch, id, account.CurrencyCode, req.CurrencyCode)
		}
	}

	balanceChanges, err := accounting.ComputeBalanceChanges(lines, accounts)
	if err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:         journalID,
		OrgID:             orgID,
		BranchID:          req.BranchID,
		JournalDate:       req.Date,
		Description:       req.Description,
		CurrencyCode:      req.CurrencyCode,
		Status:            domain.Posted,
		Amount:            debitTotal(lines),
		ReversesJournalID: req.ReversesJournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines, balanceChanges); err != nil {
		return nil, fmt.Errorf("saving journal: %w", err)
	}

	logger.Info("Journal posted", "journal_id", journalID, "branch_id", req.BranchID, "amount", journal.Amount)
	journal.Lines = lines
	return &journal, nil
}

func (s *ledgerService) GetJournalByID(ctx context.Context, orgID string, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("fetching journal lines: %w", err)
	}
	journal.Lines = lines
	return journal, nil
}

func (s *ledgerService) ListJournals(ctx context.Context, orgID string, branchID string, limit int, nextToken *string) (*dto.ListJournalsResponse, error) {
	limit = utils.ClampLimit(limit)
	journals, next, err := s.journalRepo.ListJournalsByBranch(ctx, orgID, branchID, limit, nextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListJournalsResponse{NextToken: next}
	for i := range journals {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&journals[i]))
	}
	return resp, nil
}

// debitTotal is the journal's economic value: the sum of one balanced side.
func debitTotal(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.TransactionType == domain.Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}
