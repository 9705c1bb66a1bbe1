package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/utils/accounting"
)

func line(accountID string, amount int64, txType domain.TransactionType) domain.JournalLine {
	return domain.JournalLine{
		AccountID:       accountID,
		Amount:          decimal.NewFromInt(amount),
		TransactionType: txType,
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		txType      domain.TransactionType
		expected    int64
	}{
		{"debit raises an asset", domain.Asset, domain.Debit, 100},
		{"credit lowers an asset", domain.Asset, domain.Credit, -100},
		{"debit raises an expense", domain.Expense, domain.Debit, 100},
		{"debit lowers a liability", domain.Liability, domain.Debit, -100},
		{"credit raises a liability", domain.Liability, domain.Credit, 100},
		{"credit raises revenue", domain.Revenue, domain.Credit, 100},
		{"debit lowers equity", domain.Equity, domain.Debit, -100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := accounting.CalculateSignedAmount(line("a1", 100, tc.txType), tc.accountType)
			require.NoError(t, err)
			assert.True(t, signed.Equal(decimal.NewFromInt(tc.expected)), "got %s", signed)
		})
	}
}

func TestCalculateSignedAmount_RejectsNonPositive(t *testing.T) {
	_, err := accounting.CalculateSignedAmount(line("a1", 0, domain.Debit), domain.Asset)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.CalculateSignedAmount(line("a1", -5, domain.Credit), domain.Asset)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCalculateSignedAmount_RejectsUnknownTypes(t *testing.T) {
	_, err := accounting.CalculateSignedAmount(line("a1", 10, domain.Debit), domain.AccountType("GOODWILL"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.CalculateSignedAmount(domain.JournalLine{
		AccountID:       "a1",
		Amount:          decimal.NewFromInt(10),
		TransactionType: domain.TransactionType("TRANSFER"),
	}, domain.Asset)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateBalanced(t *testing.T) {
	t.Run("balanced pair passes", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.JournalLine{
			line("a1", 50, domain.Debit),
			line("a2", 50, domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("split credit passes", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.JournalLine{
			line("a1", 50, domain.Debit),
			line("a2", 30, domain.Credit),
			line("a3", 20, domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("unbalanced fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.JournalLine{
			line("a1", 50, domain.Debit),
			line("a2", 45, domain.Credit),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("single line fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.JournalLine{line("a1", 50, domain.Debit)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero amount fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.JournalLine{
			line("a1", 0, domain.Debit),
			line("a2", 0, domain.Credit),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestComputeBalanceChanges(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash": {AccountID: "cash", AccountType: domain.Asset},
		"held": {AccountID: "held", AccountType: domain.Liability},
	}

	changes, err := accounting.ComputeBalanceChanges([]domain.JournalLine{
		line("cash", 50, domain.Debit),
		line("held", 50, domain.Credit),
	}, accounts)

	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(50)))
	assert.True(t, changes["held"].Equal(decimal.NewFromInt(50)))
}

func TestComputeBalanceChanges_AccumulatesPerAccount(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash": {AccountID: "cash", AccountType: domain.Asset},
		"rev":  {AccountID: "rev", AccountType: domain.Revenue},
	}

	changes, err := accounting.ComputeBalanceChanges([]domain.JournalLine{
		line("cash", 30, domain.Debit),
		line("cash", 20, domain.Debit),
		line("rev", 50, domain.Credit),
	}, accounts)

	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(50)))
	assert.True(t, changes["rev"].Equal(decimal.NewFromInt(50)))
}

func TestComputeBalanceChanges_UnknownAccount(t *testing.T) {
	_, err := accounting.ComputeBalanceChanges([]domain.JournalLine{
		line("ghost", 50, domain.Debit),
	}, map[string]domain.Account{})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
