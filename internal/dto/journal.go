package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// JournalLineInput is one debit or credit in a journal being created.
type JournalLineInput struct {
	AccountID       string          `json:"accountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string          `json:"notes"`
}

// CreateJournalRequest posts one balanced journal entry.
type CreateJournalRequest struct {
	BranchID          string             `json:"branchID" binding:"required"`
	Date              time.Time          `json:"date" binding:"required"`
	Description       string             `json:"description" binding:"required"`
	CurrencyCode      string             `json:"currencyCode" binding:"required"`
	ReversesJournalID *string            `json:"reversesJournalID"`
	Lines             []JournalLineInput `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse is the API representation of a journal line.
type JournalLineResponse struct {
	LineID          string          `json:"lineID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Notes           string          `json:"notes,omitempty"`
}

// JournalResponse is the API representation of a journal entry.
type JournalResponse struct {
	JournalID         string                `json:"journalID"`
	BranchID          string                `json:"branchID"`
	JournalDate       time.Time             `json:"journalDate"`
	Description       string                `json:"description"`
	CurrencyCode      string                `json:"currencyCode"`
	Status            string                `json:"status"`
	Amount            decimal.Decimal       `json:"amount"`
	ReversesJournalID *string               `json:"reversesJournalID,omitempty"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ToJournalResponse converts a domain journal to its API shape.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:         j.JournalID,
		BranchID:          j.BranchID,
		JournalDate:       j.JournalDate,
		Description:       j.Description,
		CurrencyCode:      j.CurrencyCode,
		Status:            string(j.Status),
		Amount:            j.Amount,
		ReversesJournalID: j.ReversesJournalID,
		CreatedAt:         j.CreatedAt,
	}
	for _, line := range j.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:          line.LineID,
			AccountID:       line.AccountID,
			Amount:          line.Amount,
			TransactionType: string(line.TransactionType),
			Notes:           line.Notes,
		})
	}
	return resp
}

// ListJournalsResponse is a page of journal entries.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
