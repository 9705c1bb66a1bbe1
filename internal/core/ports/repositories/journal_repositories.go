package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for the ledger.
type JournalRepositoryFacade interface {
	// SaveJournal persists the journal, its lines and the account balance
	// deltas in one database transaction. Either everything is written or
	// nothing is.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error

	FindJournalByID(ctx context.Context, orgID string, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournalsByBranch returns journals newest first with token pagination.
	ListJournalsByBranch(ctx context.Context, orgID string, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}
