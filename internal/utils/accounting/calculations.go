package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// CalculateSignedAmount returns the balance delta a line applies to its
// account. Debits increase ASSET and EXPENSE accounts; credits increase
// LIABILITY, EQUITY and REVENUE accounts.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if line.Amount.IsNegative() || line.Amount.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: line amount must be positive, got %s", apperrors.ErrValidation, line.Amount)
	}

	var naturalDebit bool
	switch accountType {
	case domain.Asset, domain.Expense:
		naturalDebit = true
	case domain.Liability, domain.Equity, domain.Revenue:
		naturalDebit = false
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	switch line.TransactionType {
	case domain.Debit:
		if naturalDebit {
			return line.Amount, nil
		}
		return line.Amount.Neg(), nil
	case domain.Credit:
		if naturalDebit {
			return line.Amount.Neg(), nil
		}
		return line.Amount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, line.TransactionType)
	}
}

// ValidateBalanced enforces the double-entry invariants: at least two lines,
// every amount strictly positive, and total debits equal to total credits.
func ValidateBalanced(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal needs at least two lines, got %d", apperrors.ErrValidation, len(lines))
	}
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if !line.Amount.IsPositive() {
			return fmt.Errorf("%w: line amount must be positive, got %s", apperrors.ErrValidation, line.Amount)
		}
		switch line.TransactionType {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, line.TransactionType)
		}
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: journal is unbalanced, debits %s != credits %s", apperrors.ErrValidation, debits, credits)
	}
	return nil
}

// ComputeBalanceChanges folds a journal's lines into per-account signed
// deltas, keyed by account ID.
func ComputeBalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by journal line not found", apperrors.ErrNotFound, line.AccountID)
		}
		signed, err := CalculateSignedAmount(line, account.AccountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}
