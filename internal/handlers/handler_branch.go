package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

func newBranchHandler(branchService portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{branchService: branchService}
}

// createBranch registers a new branch for the caller's org.
// POST /api/v1/branches
func (h *branchHandler) createBranch(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// getBranch returns one branch.
// GET /api/v1/branches/:branchID
func (h *branchHandler) getBranch(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), orgID, c.Param("branchID"))
	if err != nil {
		respondError(c, err, "Failed to load branch")
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// createTable registers a bookable table within a branch.
// POST /api/v1/branches/:branchID/tables
func (h *branchHandler) createTable(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	table, err := h.branchService.CreateTable(c.Request.Context(), orgID, c.Param("branchID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create table")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTableResponse(table))
}

// listTables returns a branch's active tables ordered by capacity.
// GET /api/v1/branches/:branchID/tables
func (h *branchHandler) listTables(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	tables, err := h.branchService.ListTables(c.Request.Context(), orgID, c.Param("branchID"))
	if err != nil {
		respondError(c, err, "Failed to list tables")
		return
	}

	resp := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		resp = append(resp, dto.ToTableResponse(&tables[i]))
	}
	c.JSON(http.StatusOK, gin.H{"tables": resp})
}

// upsertPolicy replaces a branch's reservation policy.
// PUT /api/v1/branches/:branchID/policy
func (h *branchHandler) upsertPolicy(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.UpsertPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	policy, err := h.branchService.UpsertPolicy(c.Request.Context(), orgID, c.Param("branchID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// getPolicy returns a branch's effective reservation policy. Branches with
// no stored policy get the documented defaults.
// GET /api/v1/branches/:branchID/policy
func (h *branchHandler) getPolicy(c *gin.Context) {
	orgID, _, ok := callerScope(c)
	if !ok {
		return
	}

	policy, err := h.branchService.GetPolicy(c.Request.Context(), orgID, c.Param("branchID"))
	if err != nil {
		respondError(c, err, "Failed to load policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// addOperatingHours adds one weekly open window.
// POST /api/v1/branches/:branchID/operating-hours
func (h *branchHandler) addOperatingHours(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.OperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	hours, err := h.branchService.AddOperatingHours(c.Request.Context(), orgID, c.Param("branchID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add operating hours")
		return
	}

	c.JSON(http.StatusCreated, hours)
}

// addBlackout closes the branch for an ad-hoc interval.
// POST /api/v1/branches/:branchID/blackouts
func (h *branchHandler) addBlackout(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	blackout, err := h.branchService.AddBlackout(c.Request.Context(), orgID, c.Param("branchID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add blackout")
		return
	}

	c.JSON(http.StatusCreated, blackout)
}

// setCapacityRule sets per-hour party and cover ceilings.
// PUT /api/v1/branches/:branchID/capacity-rule
func (h *branchHandler) setCapacityRule(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CapacityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rule, err := h.branchService.SetCapacityRule(c.Request.Context(), orgID, c.Param("branchID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to set capacity rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}
