package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

type reservationHandler struct {
	reservationService  portssvc.ReservationSvcFacade
	capacityService     portssvc.CapacitySvcFacade
	bookingTokenService portssvc.BookingTokenSvcFacade
}

func newReservationHandler(
	reservationService portssvc.ReservationSvcFacade,
	capacityService portssvc.CapacitySvcFacade,
	bookingTokenService portssvc.BookingTokenSvcFacade,
) *reservationHandler {
	return &reservationHandler{
		reservationService:  reservationService,
		capacityService:     capacityService,
		bookingTokenService: bookingTokenService,
	}
}

// createReservation books a new reservation in HELD state.
// POST /api/v1/reservations
func (h *reservationHandler) createReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

// getReservation returns one reservation.
// GET /api/v1/reservations/:reservationID
func (h *reservationHandler) getReservation(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), orgID, c.Param("reservationID"))
	if err != nil {
		respondError(c, err, "Failed to load reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// listReservations pages a branch's reservations overlapping [from, to).
// GET /api/v1/branches/:branchID/reservations?from=&to=&limit=&nextToken=
func (h *reservationHandler) listReservations(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'from' (RFC3339)"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'to' (RFC3339)"})
		return
	}

	params := dto.ListReservationsParams{
		From:      from,
		To:        to,
		Limit:     queryInt(c, "limit", utils.DefaultListLimit),
		NextToken: optionalQuery(c, "nextToken"),
	}

	resp, err := h.reservationService.ListReservations(c.Request.Context(), orgID, c.Param("branchID"), params)
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// confirmReservation moves HELD -> CONFIRMED.
// POST /api/v1/reservations/:reservationID/confirm
func (h *reservationHandler) confirmReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.ConfirmReservation(c.Request.Context(), orgID, c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to confirm reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// seatReservation moves HELD or CONFIRMED -> SEATED, auto-assigning a table
// when the reservation has none.
// POST /api/v1/reservations/:reservationID/seat
func (h *reservationHandler) seatReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.SeatReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservation, err := h.reservationService.SeatReservation(c.Request.Context(), orgID, c.Param("reservationID"), req.OrderID, userID)
	if err != nil {
		respondError(c, err, "Failed to seat reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// completeReservation moves SEATED -> COMPLETED.
// POST /api/v1/reservations/:reservationID/complete
func (h *reservationHandler) completeReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.CompleteReservation(c.Request.Context(), orgID, c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to complete reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// cancelReservation cancels a HELD or CONFIRMED reservation. Staff
// cancellations bypass the guest cancellation cutoff.
// POST /api/v1/reservations/:reservationID/cancel
func (h *reservationHandler) cancelReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), orgID, c.Param("reservationID"), req.Reason, userID, false)
	if err != nil {
		respondError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// markNoShow marks a HELD or CONFIRMED reservation NO_SHOW. Deposit
// forfeiture depends on the branch's grace period.
// POST /api/v1/reservations/:reservationID/no-show
func (h *reservationHandler) markNoShow(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.NoShowRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservation, err := h.reservationService.MarkNoShow(c.Request.Context(), orgID, c.Param("reservationID"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to mark no-show")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// modifyReservation changes the window, party size or table of a HELD or
// CONFIRMED reservation, re-running admissibility checks.
// PATCH /api/v1/reservations/:reservationID
func (h *reservationHandler) modifyReservation(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservation, err := h.reservationService.ModifyReservation(c.Request.Context(), orgID, c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to modify reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// generateBookingLink issues a single-use guest token for the reservation.
// POST /api/v1/reservations/:reservationID/booking-link
func (h *reservationHandler) generateBookingLink(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.GenerateBookingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reservationID := c.Param("reservationID")
	// Confirm the reservation exists within the caller's org before minting
	// a token for it.
	if _, err := h.reservationService.GetReservation(c.Request.Context(), orgID, reservationID); err != nil {
		respondError(c, err, "Failed to load reservation")
		return
	}

	ttl := req.TTLHours
	if ttl == 0 {
		ttl = 72
	}

	token, err := h.bookingTokenService.GenerateToken(c.Request.Context(), orgID, reservationID, domain.BookingTokenScope(req.Scope), ttl)
	if err != nil {
		respondError(c, err, "Failed to generate booking link")
		return
	}

	c.JSON(http.StatusCreated, dto.BookingLinkResponse{Token: token, Scope: req.Scope})
}

// checkCapacity evaluates the branch capacity ceiling for a candidate party.
// GET /api/v1/branches/:branchID/availability?start=&end=&partySize=
func (h *reservationHandler) checkCapacity(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'start' (RFC3339)"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'end' (RFC3339)"})
		return
	}
	partySize := queryInt(c, "partySize", 0)
	if partySize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'partySize'"})
		return
	}

	resp, err := h.capacityService.CheckCapacity(c.Request.Context(), orgID, c.Param("branchID"), start, end, partySize, nil)
	if err != nil {
		respondError(c, err, "Failed to check capacity")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func optionalQuery(c *gin.Context, key string) *string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return &raw
}
