package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// DepositRepositoryFacade defines persistence operations for reservation deposits.
type DepositRepositoryFacade interface {
	// SaveDeposit inserts a new deposit and stamps the owning reservation's
	// depositStatus in the same transaction. ErrConflict when the reservation
	// already has a deposit (at-most-one invariant).
	SaveDeposit(ctx context.Context, deposit domain.ReservationDeposit) error

	// FindDepositByReservationID returns the reservation's deposit
	// (first-found; the system assumes at most one active deposit).
	FindDepositByReservationID(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error)

	// SettleDeposit performs one deposit status transition atomically:
	// optionally posts the journal entry with its lines and account balance
	// updates, updates the deposit row (status + journal back-references) iff
	// its stored status still equals expectedStatus, and mirrors the new
	// status onto the reservation row, all in a single database transaction.
	// A nil journal means a pure status flip (e.g. forfeiting a never-paid
	// deposit). Guard failure returns ErrConflict and nothing is written.
	SettleDeposit(ctx context.Context, deposit domain.ReservationDeposit, expectedStatus domain.DepositStatus, journal *domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error
}
