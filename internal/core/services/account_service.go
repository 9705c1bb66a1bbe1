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
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// accountService manages the chart of accounts, including the lazy creation
// of the kind-tagged system accounts the deposit flow posts against.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	clk         clock.Clock
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, clk clock.Clock) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, clk: clk}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ResolveSystemAccount(ctx context.Context, orgID string, branchID string, kind domain.AccountKind, currencyCode string, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindSystemAccount(ctx, orgID, branchID, kind)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding system account %s: %w", kind, err)
	}

	now := s.clk.Now()
	created := domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        orgID,
		BranchID:     branchID,
		Name:         domain.NameForKind(kind),
		AccountType:  domain.TypeForKind(kind),
		Kind:         kind,
		CurrencyCode: currencyCode,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, created); err != nil {
		// A concurrent caller may have created it first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindSystemAccount(ctx, orgID, branchID, kind)
		}
		return nil, fmt.Errorf("creating system account %s: %w", kind, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("System account created",
		"kind", kind, "branch_id", branchID, "account_id", created.AccountID)
	return &created, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, orgID, accountID)
}

func (s *accountService) GetAccountByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
}
