package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

type automationHandler struct {
	automationService portssvc.AutomationSvcFacade
}

func newAutomationHandler(automationService portssvc.AutomationSvcFacade) *automationHandler {
	return &automationHandler{automationService: automationService}
}

// listLogs pages the automation audit trail, newest first.
// GET /api/v1/automation/logs?branchID=&entityType=&entityID=&action=&from=&to=&limit=&nextToken=
func (h *automationHandler) listLogs(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	params := dto.ListLogsParams{
		BranchID:   optionalQuery(c, "branchID"),
		EntityType: optionalQuery(c, "entityType"),
		EntityID:   optionalQuery(c, "entityID"),
		Action:     optionalQuery(c, "action"),
		Limit:      queryInt(c, "limit", utils.DefaultListLimit),
		NextToken:  optionalQuery(c, "nextToken"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' (RFC3339)"})
			return
		}
		params.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' (RFC3339)"})
			return
		}
		params.To = &t
	}

	resp, err := h.automationService.GetAutomationLogs(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, err, "Failed to list automation logs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// runTick executes one automation pass on demand. The scheduler runs the
// same pass on its interval; this endpoint exists for operators and tests.
// POST /api/v1/automation/tick
func (h *automationHandler) runTick(c *gin.Context) {
	if _, _, ok := callerScope(c); !ok {
		return
	}

	result := h.automationService.RunAll(c.Request.Context())
	c.JSON(http.StatusOK, result)
}
