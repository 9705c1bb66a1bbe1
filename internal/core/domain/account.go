package domain

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountKind tags the well-known accounts the deposit flow posts against.
// Kind-tagged accounts are resolved (or lazily created) per branch.
type AccountKind string

const (
	KindCash          AccountKind = "CASH"
	KindDepositsHeld  AccountKind = "DEPOSITS_HELD"
	KindDepositRev    AccountKind = "DEPOSIT_REVENUE"
	KindNoShowRevenue AccountKind = "NO_SHOW_REVENUE"
)

// Account represents a general-ledger account within the core domain.
type Account struct {
	AccountID    string          `json:"accountID"`
	OrgID        string          `json:"orgID"`
	BranchID     string          `json:"branchID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Kind         AccountKind     `json:"kind,omitempty"` // empty for user-defined accounts
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// TypeForKind returns the account type used when a system account of the
// given kind is lazily created.
func TypeForKind(kind AccountKind) AccountType {
	switch kind {
	case KindCash:
		return Asset
	case KindDepositsHeld:
		return Liability
	case KindDepositRev, KindNoShowRevenue:
		return Revenue
	}
	return Asset
}

// NameForKind returns the display name used when a system account of the
// given kind is lazily created.
func NameForKind(kind AccountKind) string {
	switch kind {
	case KindCash:
		return "Cash"
	case KindDepositsHeld:
		return "Deposits Held"
	case KindDepositRev:
		return "Deposit Revenue"
	case KindNoShowRevenue:
		return "No-Show Revenue"
	}
	return string(kind)
}
