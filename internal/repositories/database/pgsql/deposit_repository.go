package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxDepositRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

func newPgxDepositRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.DepositRepositoryFacade {
	return &PgxDepositRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

const depositColumns = `deposit_id, org_id, branch_id, reservation_id, amount, currency_code, status, journal_id, refund_journal_id, apply_journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanDeposit(row pgx.Row) (*domain.ReservationDeposit, error) {
	var d domain.ReservationDeposit
	err := row.Scan(
		&d.DepositID, &d.OrgID, &d.BranchID, &d.ReservationID, &d.Amount, &d.CurrencyCode,
		&d.Status, &d.JournalID, &d.RefundJournalID, &d.ApplyJournalID,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// SaveDeposit inserts the deposit and mirrors REQUIRED onto the owning
// reservation in the same transaction. The unique index on reservation_id
// enforces the at-most-one invariant.
func (r *PgxDepositRepository) SaveDeposit(ctx context.Context, deposit domain.ReservationDeposit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO reservation_deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		deposit.DepositID, deposit.OrgID, deposit.BranchID, deposit.ReservationID,
		deposit.Amount, deposit.CurrencyCode, deposit.Status,
		deposit.JournalID, deposit.RefundJournalID, deposit.ApplyJournalID,
		deposit.CreatedAt, deposit.CreatedBy, deposit.LastUpdatedAt, deposit.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert deposit "+deposit.DepositID, err)
	}

	if err := mirrorDepositStatusInTx(ctx, tx, deposit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDepositRepository) FindDepositByReservationID(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM reservation_deposits WHERE org_id = $1 AND reservation_id = $2;`
	return scanDeposit(r.Pool.QueryRow(ctx, query, orgID, reservationID))
}

// SettleDeposit performs one status transition atomically: the optional
// journal with its lines and balance updates, the guarded deposit update and
// the reservation's mirrored deposit_status, in a single transaction. A
// failed guard rolls everything back and reports ErrConflict.
func (r *PgxDepositRepository) SettleDeposit(ctx context.Context, deposit domain.ReservationDeposit, expectedStatus domain.DepositStatus, journal *domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if journal != nil {
		if err := insertJournalInTx(ctx, tx, *journal); err != nil {
			return err
		}
		accountIDs := make([]string, 0, len(balanceChanges))
		for accountID := range balanceChanges {
			accountIDs = append(accountIDs, accountID)
		}
		lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
		if err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for deposit settlement", err)
		}
		if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, journal.CreatedBy, journal.CreatedAt); err != nil {
			return err
		}
		if err := insertLinesInTx(ctx, tx, lines, lockedAccounts); err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE reservation_deposits
		SET status = $1, journal_id = $2, refund_journal_id = $3, apply_journal_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE org_id = $7 AND deposit_id = $8 AND status = $9;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		deposit.Status, deposit.JournalID, deposit.RefundJournalID, deposit.ApplyJournalID,
		deposit.LastUpdatedAt, deposit.LastUpdatedBy,
		deposit.OrgID, deposit.DepositID, expectedStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update deposit "+deposit.DepositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := mirrorDepositStatusInTx(ctx, tx, deposit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func mirrorDepositStatusInTx(ctx context.Context, tx pgx.Tx, deposit domain.ReservationDeposit) error {
	query := `
		UPDATE reservations SET deposit_status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE org_id = $4 AND reservation_id = $5;
	`
	tag, err := tx.Exec(ctx, query,
		deposit.Status, deposit.LastUpdatedAt, deposit.LastUpdatedBy,
		deposit.OrgID, deposit.ReservationID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mirror deposit status onto reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
