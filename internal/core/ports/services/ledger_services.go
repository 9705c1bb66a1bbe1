package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// LedgerSvcFacade is the pure accounting primitive: it creates balanced
// journal entries against the chart of accounts and knows nothing about
// reservations.
type LedgerSvcFacade interface {
	CreateJournal(ctx context.Context, orgID string, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error)
	GetJournalByID(ctx context.Context, orgID string, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, orgID string, branchID string, limit int, nextToken *string) (*dto.ListJournalsResponse, error)
}

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	// ResolveSystemAccount returns the branch's kind-tagged account, creating
	// it lazily on first use.
	ResolveSystemAccount(ctx context.Context, orgID string, branchID string, kind domain.AccountKind, currencyCode string, actorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)
	GetAccountByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
}
