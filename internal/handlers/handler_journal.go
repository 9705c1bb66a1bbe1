package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

type ledgerHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade, accountService portssvc.AccountSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService, accountService: accountService}
}

// createJournal posts one balanced journal entry.
// POST /api/v1/journals
func (h *ledgerHandler) createJournal(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.ledgerService.CreateJournal(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal returns one journal with its lines.
// GET /api/v1/journals/:journalID
func (h *ledgerHandler) getJournal(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	journal, err := h.ledgerService.GetJournalByID(c.Request.Context(), orgID, c.Param("journalID"))
	if err != nil {
		respondError(c, err, "Failed to load journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals pages a branch's journals, newest first.
// GET /api/v1/branches/:branchID/journals?limit=&nextToken=
func (h *ledgerHandler) listJournals(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ListJournals(
		c.Request.Context(),
		orgID,
		c.Param("branchID"),
		queryInt(c, "limit", utils.DefaultListLimit),
		optionalQuery(c, "nextToken"),
	)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getAccount returns one ledger account with its running balance.
// GET /api/v1/accounts/:accountID
func (h *ledgerHandler) getAccount(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), orgID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to load account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountID":    account.AccountID,
		"branchID":     account.BranchID,
		"name":         account.Name,
		"kind":         account.Kind,
		"accountType":  account.AccountType,
		"currencyCode": account.CurrencyCode,
		"balance":      account.Balance,
		"isActive":     account.IsActive,
	})
}
