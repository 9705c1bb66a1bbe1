package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// RequireDepositRequest attaches a deposit requirement to a reservation.
type RequireDepositRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode"`
}

// RefundDepositRequest refunds a paid deposit. A nil amount refunds in full;
// partial refunds are posted as new entries, not literal reversals.
type RefundDepositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// ApplyDepositRequest applies a paid deposit to the bill. A non-nil
// refundPortion splits the settlement: that much is returned as cash, the
// remainder is recognized as revenue (three-line entry).
type ApplyDepositRequest struct {
	RefundPortion *decimal.Decimal `json:"refundPortion"`
}

// DepositResponse is the API representation of a reservation deposit.
type DepositResponse struct {
	DepositID       string          `json:"depositID"`
	ReservationID   string          `json:"reservationID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          string          `json:"status"`
	JournalID       *string         `json:"journalID,omitempty"`
	RefundJournalID *string         `json:"refundJournalID,omitempty"`
	ApplyJournalID  *string         `json:"applyJournalID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToDepositResponse converts a domain deposit to its API shape.
func ToDepositResponse(d *domain.ReservationDeposit) DepositResponse {
	return DepositResponse{
		DepositID:       d.DepositID,
		ReservationID:   d.ReservationID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		JournalID:       d.JournalID,
		RefundJournalID: d.RefundJournalID,
		ApplyJournalID:  d.ApplyJournalID,
		CreatedAt:       d.CreatedAt,
	}
}
