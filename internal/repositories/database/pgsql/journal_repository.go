package pgsql

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	"github.com/tablewise/table_reservation_app/internal/utils"
	"github.com/tablewise/table_reservation_app/internal/utils/accounting"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, org_id, branch_id, journal_date, description, currency_code, status, amount, reverses_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var j domain.Journal
	err := row.Scan(
		&j.JournalID, &j.OrgID, &j.BranchID, &j.JournalDate, &j.Description,
		&j.CurrencyCode, &j.Status, &j.Amount, &j.ReversesJournalID, &j.ReversingJournalID,
		&j.CreatedAt, &j.CreatedBy, &j.LastUpdatedAt, &j.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// SaveJournal writes the journal, locks and adjusts the touched accounts and
// inserts the lines with running balances, all in one database transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalInTx(ctx, tx, journal); err != nil {
		return err
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, journal.CreatedBy, journal.CreatedAt); err != nil {
		return err
	}

	if err := insertLinesInTx(ctx, tx, lines, lockedAccounts); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		journal.JournalID, journal.OrgID, journal.BranchID, journal.JournalDate,
		journal.Description, journal.CurrencyCode, journal.Status, journal.Amount,
		journal.ReversesJournalID, journal.ReversingJournalID,
		journal.CreatedAt, journal.CreatedBy, journal.LastUpdatedAt, journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}
	return nil
}

// insertLinesInTx batch-inserts the journal lines, stamping each with the
// running balance of its account after the line applies.
func insertLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine, lockedAccounts map[string]domain.Account) error {
	query := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, amount, transaction_type, currency_code, notes, running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	running := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accountID, account := range lockedAccounts {
		running[accountID] = account.Balance
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].LineID < lines[j].LineID })

	batch := &pgx.Batch{}
	for _, line := range lines {
		account, ok := lockedAccounts[line.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "account "+line.AccountID+" was not locked for journal line", nil)
		}
		signed, err := accounting.CalculateSignedAmount(line, account.AccountType)
		if err != nil {
			return err
		}
		running[line.AccountID] = running[line.AccountID].Add(signed)
		line.RunningBalance = running[line.AccountID]

		batch.Queue(query,
			line.LineID, line.JournalID, line.AccountID, line.Amount,
			line.TransactionType, line.CurrencyCode, line.Notes, line.RunningBalance,
			line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, orgID string, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE org_id = $1 AND journal_id = $2;`
	return scanJournal(r.Pool.QueryRow(ctx, query, orgID, journalID))
}

func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, amount, transaction_type, currency_code, notes, running_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines WHERE journal_id = $1 ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.JournalID, &l.AccountID, &l.Amount, &l.TransactionType,
			&l.CurrencyCode, &l.Notes, &l.RunningBalance,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PgxJournalRepository) ListJournalsByBranch(ctx context.Context, orgID string, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	offset, err := utils.DecodeNextToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `
		SELECT ` + journalColumns + ` FROM journals
		WHERE org_id = $1 AND branch_id = $2
		ORDER BY created_at DESC, journal_id DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, branchID, limit, offset)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, nil, err
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return journals, utils.NextTokenForPage(offset, limit, len(journals)), nil
}
