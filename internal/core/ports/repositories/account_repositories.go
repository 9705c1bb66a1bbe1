package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for GL accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)

	// FindSystemAccount returns the branch's kind-tagged account (Cash,
	// Deposits Held, ...). ErrNotFound when it has not been created yet.
	FindSystemAccount(ctx context.Context, orgID string, branchID string, kind domain.AccountKind) (*domain.Account, error)

	// FindAccountsByIDsForUpdate locks the account rows inside the caller's
	// transaction and returns their current state.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas within the
	// caller's transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}
