package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// publicHandler serves the unauthenticated guest surface: availability
// lookups and single-use booking links. Tenancy comes from query parameters
// or from the signed token, never from a session.
type publicHandler struct {
	bookingTokenService portssvc.BookingTokenSvcFacade
	reservationService  portssvc.ReservationSvcFacade
	scheduleService     portssvc.ScheduleSvcFacade
	capacityService     portssvc.CapacitySvcFacade
}

func newPublicHandler(
	bookingTokenService portssvc.BookingTokenSvcFacade,
	reservationService portssvc.ReservationSvcFacade,
	scheduleService portssvc.ScheduleSvcFacade,
	capacityService portssvc.CapacitySvcFacade,
) *publicHandler {
	return &publicHandler{
		bookingTokenService: bookingTokenService,
		reservationService:  reservationService,
		scheduleService:     scheduleService,
		capacityService:     capacityService,
	}
}

// checkAvailability evaluates a candidate window against the branch's
// schedule and capacity ceiling, without creating anything.
// GET /public/availability?orgID=&branchID=&start=&end=&partySize=
func (h *publicHandler) checkAvailability(c *gin.Context) {
	orgID := c.Query("orgID")
	branchID := c.Query("branchID")
	if orgID == "" || branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'orgID' or 'branchID'"})
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

	decision, err := h.scheduleService.EvaluateWindow(c.Request.Context(), orgID, branchID, start, end, partySize, nil)
	if err != nil {
		respondError(c, err, "Failed to evaluate availability")
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"code":      decision.Code,
			"reason":    decision.Reason,
		})
		return
	}

	capacity, err := h.capacityService.CheckCapacity(c.Request.Context(), orgID, branchID, start, end, partySize, nil)
	if err != nil {
		respondError(c, err, "Failed to evaluate availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": capacity.Allowed, "capacity": capacity})
}

// confirmBooking lets a guest confirm their held reservation via a
// single-use CONFIRM link.
// POST /public/bookings/confirm
func (h *publicHandler) confirmBooking(c *gin.Context) {
	claims, ok := h.consumeToken(c, domain.ScopeConfirm)
	if !ok {
		return
	}

	reservation, err := h.reservationService.ConfirmReservation(c.Request.Context(), claims.OrgID, claims.ReservationID, domain.GuestActorID)
	if err != nil {
		respondError(c, err, "Failed to confirm reservation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// cancelBooking lets a guest cancel via a single-use CANCEL link. The
// branch's cancellation cutoff applies; past it the guest gets a conflict.
// POST /public/bookings/cancel
func (h *publicHandler) cancelBooking(c *gin.Context) {
	var req dto.PublicBookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	claims, err := h.bookingTokenService.ValidateToken(c.Request.Context(), req.Token, domain.ScopeCancel)
	if err != nil {
		respondError(c, err, "Failed to validate booking link")
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), claims.OrgID, claims.ReservationID, req.Reason, domain.GuestActorID, true)
	if err != nil {
		respondError(c, err, "Failed to cancel reservation")
		return
	}

	// Burn the token only after the cancellation went through, so a guest
	// who hits the cutoff can retry with staff help without a dead link.
	if err := h.bookingTokenService.MarkUsed(c.Request.Context(), claims); err != nil {
		respondError(c, err, "Failed to consume booking link")
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// consumeToken validates and burns a single-use token before the action
// runs. Used for CONFIRM, where a replay is harmless but a burnt link is
// the simpler contract.
func (h *publicHandler) consumeToken(c *gin.Context, scope domain.BookingTokenScope) (*domain.BookingTokenClaims, bool) {
	var req dto.PublicBookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return nil, false
	}

	claims, err := h.bookingTokenService.ValidateToken(c.Request.Context(), req.Token, scope)
	if err != nil {
		respondError(c, err, "Failed to validate booking link")
		return nil, false
	}
	if err := h.bookingTokenService.MarkUsed(c.Request.Context(), claims); err != nil {
		respondError(c, err, "Failed to consume booking link")
		return nil, false
	}
	return claims, true
}
