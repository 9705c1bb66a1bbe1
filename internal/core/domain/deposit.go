package domain

import "github.com/shopspring/decimal"

// DepositStatus is the settlement state of a reservation deposit. Transitions
// are forward-only along a DAG:
//
//	REQUIRED -> PAID -> {APPLIED, REFUNDED}
//	{REQUIRED, PAID} -> FORFEITED
type DepositStatus string

const (
	DepositNone      DepositStatus = "NONE" // reservation carries no deposit
	DepositRequired  DepositStatus = "REQUIRED"
	DepositPaid      DepositStatus = "PAID"
	DepositApplied   DepositStatus = "APPLIED"
	DepositRefunded  DepositStatus = "REFUNDED"
	DepositForfeited DepositStatus = "FORFEITED"
)

// CanTransitionTo reports whether the deposit DAG allows s -> target.
func (s DepositStatus) CanTransitionTo(target DepositStatus) bool {
	switch s {
	case DepositRequired:
		return target == DepositPaid || target == DepositForfeited || target == DepositRefunded
	case DepositPaid:
		return target == DepositApplied || target == DepositRefunded || target == DepositForfeited
	}
	return false
}

// IsSettled reports whether the deposit has reached a terminal settlement state.
func (s DepositStatus) IsSettled() bool {
	switch s {
	case DepositApplied, DepositRefunded, DepositForfeited:
		return true
	}
	return false
}

// ReservationDeposit is the at-most-one deposit attached to a reservation.
// Each settling transition records the journal entry that moved the money.
type ReservationDeposit struct {
	DepositID       string          `json:"depositID"`
	OrgID           string          `json:"orgID"`
	BranchID        string          `json:"branchID"`
	ReservationID   string          `json:"reservationID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          DepositStatus   `json:"status"`
	JournalID       *string         `json:"journalID"`       // posting made when the deposit was paid
	RefundJournalID *string         `json:"refundJournalID"` // posting made on refund
	ApplyJournalID  *string         `json:"applyJournalID"`  // posting made when applied to the bill or forfeited
	AuditFields
}
