package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple lines.
type Journal struct {
	JournalID    string          `json:"journalID"`
	OrgID        string          `json:"orgID"`
	BranchID     string          `json:"branchID"`
	JournalDate  time.Time       `json:"journalDate"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Status       JournalStatus   `json:"status"`
	Amount       decimal.Decimal `json:"amount"` // total debit side; the journal's economic value

	// ReversesJournalID annotates this entry as a structural reversal of
	// another (e.g. a deposit refund pointing back at the pay entry). It is an
	// annotation only; amounts need not match (partial refunds are legal).
	ReversesJournalID  *string `json:"reversesJournalID"`
	ReversingJournalID *string `json:"reversingJournalID"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit within a Journal, affecting one account.
type JournalLine struct {
	LineID          string          `json:"lineID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"` // always positive
	TransactionType TransactionType `json:"transactionType"`
	CurrencyCode    string          `json:"currencyCode"`
	Notes           string          `json:"notes"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	AuditFields
}

// TransactionType indicates whether a journal line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)
