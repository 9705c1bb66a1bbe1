package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/middleware"
)

type authHandler struct {
	userService portssvc.UserSvcFacade
}

func newAuthHandler(userService portssvc.UserSvcFacade) *authHandler {
	return &authHandler{userService: userService}
}

// login authenticates a staff user and returns a JWT.
// POST /auth/login
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		// Login failures are always 401, never 403 or 404, so the response
		// leaks nothing about which emails exist.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// register creates the first user of a brand-new org. Each registration
// bootstraps its own tenant; staff colleagues are added later through the
// authenticated user endpoint.
// POST /auth/register
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orgID := uuid.NewString()
	user, err := h.userService.CreateUser(c.Request.Context(), orgID, req, "SELF_REGISTRATION")
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userID": user.UserID,
		"orgID":  user.OrgID,
		"email":  user.Email,
	})
}

// createUser adds a staff user to the caller's org.
// POST /api/v1/users
func (h *authHandler) createUser(c *gin.Context) {
	orgID, userID, ok := callerScope(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userID": user.UserID,
		"orgID":  user.OrgID,
		"email":  user.Email,
		"name":   user.Name,
	})
}

// getMe returns the authenticated user's own record.
// GET /api/v1/users/me
func (h *authHandler) getMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":   user.UserID,
		"orgID":    user.OrgID,
		"email":    user.Email,
		"name":     user.Name,
		"isActive": user.IsActive,
	})
}
