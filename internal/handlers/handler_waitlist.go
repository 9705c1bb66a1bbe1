package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

type waitlistHandler struct {
	waitlistService portssvc.WaitlistSvcFacade
}

func newWaitlistHandler(waitlistService portssvc.WaitlistSvcFacade) *waitlistHandler {
	return &waitlistHandler{waitlistService: waitlistService}
}

// joinWaitlist adds a walk-in party to a branch's waitlist.
// POST /api/v1/waitlist
func (h *waitlistHandler) joinWaitlist(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.waitlistService.JoinWaitlist(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to join waitlist")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWaitlistResponse(entry))
}

// withdrawEntry removes a WAITING entry from the waitlist.
// POST /api/v1/waitlist/:waitlistID/withdraw
func (h *waitlistHandler) withdrawEntry(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	entry, err := h.waitlistService.WithdrawEntry(c.Request.Context(), orgID, c.Param("waitlistID"), userID)
	if err != nil {
		respondError(c, err, "Failed to withdraw waitlist entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToWaitlistResponse(entry))
}

// listWaitlist returns a branch's waitlist, optionally filtered by status.
// GET /api/v1/branches/:branchID/waitlist?status=
func (h *waitlistHandler) listWaitlist(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	var status *domain.WaitlistStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.WaitlistStatus(raw)
		status = &s
	}

	entries, err := h.waitlistService.ListWaitlist(c.Request.Context(), orgID, c.Param("branchID"), status)
	if err != nil {
		respondError(c, err, "Failed to list waitlist")
		return
	}

	resp := make([]dto.WaitlistResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.ToWaitlistResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"entries": resp})
}

// promote attempts one promotion of the oldest waiting entry.
// POST /api/v1/branches/:branchID/waitlist/promote
func (h *waitlistHandler) promote(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	reservationID, err := h.waitlistService.TryAutoPromote(c.Request.Context(), orgID, c.Param("branchID"), userID)
	if err != nil {
		respondError(c, err, "Failed to promote waitlist entry")
		return
	}

	if reservationID == nil {
		c.JSON(http.StatusOK, gin.H{"promoted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promoted": true, "reservationID": *reservationID})
}
