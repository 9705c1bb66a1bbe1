package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func newDepositHandler(depositService portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: depositService}
}

// requireDeposit attaches a deposit requirement to a reservation.
// POST /api/v1/reservations/:reservationID/deposit
func (h *depositHandler) requireDeposit(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.RequireDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deposit, err := h.depositService.RequireDeposit(c.Request.Context(), orgID, c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to require deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// getDeposit returns the reservation's deposit.
// GET /api/v1/reservations/:reservationID/deposit
func (h *depositHandler) getDeposit(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.GetDepositByReservation(c.Request.Context(), orgID, c.Param("reservationID"))
	if err != nil {
		respondError(c, err, "Failed to load deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// payDeposit records payment and posts the cash/held entry.
// POST /api/v1/reservations/:reservationID/deposit/pay
func (h *depositHandler) payDeposit(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.PayDeposit(c.Request.Context(), orgID, c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to pay deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// refundDeposit returns a paid deposit, in full or partially.
// POST /api/v1/reservations/:reservationID/deposit/refund
func (h *depositHandler) refundDeposit(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.RefundDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deposit, err := h.depositService.RefundDeposit(c.Request.Context(), orgID, c.Param("reservationID"), req.Amount, userID)
	if err != nil {
		respondError(c, err, "Failed to refund deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// applyDeposit settles a paid deposit against the bill, optionally splitting
// part of it back as cash.
// POST /api/v1/reservations/:reservationID/deposit/apply
func (h *depositHandler) applyDeposit(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.ApplyDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deposit, err := h.depositService.ApplyDeposit(c.Request.Context(), orgID, c.Param("reservationID"), req.RefundPortion, userID)
	if err != nil {
		respondError(c, err, "Failed to apply deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// forfeitDeposit keeps the deposit after a no-show.
// POST /api/v1/reservations/:reservationID/deposit/forfeit
func (h *depositHandler) forfeitDeposit(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.ForfeitDeposit(c.Request.Context(), orgID, c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to forfeit deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}
