package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coordinator-portal-backend/internal/errors"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
// @Summary Coordinator login
// @Description Validate a coordinator email against the current assignments and issue a session token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Email is not a coordinator"
// @Failure 502 {object} map[string]interface{} "Upstream data unavailable"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.Login(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotCoordinator) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email is not registered as a coordinator"})
			return
		}
		if apperrors.IsUpstream(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Assignment data unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles POST /api/auth/logout
// @Summary Coordinator logout
// @Description End the session. Tokens are stateless, so the server only acknowledges; the client discards the token.
// @Tags authentication
// @Produce json
// @Success 200 {object} LogoutResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, LogoutResponse{Message: "Logged out successfully"})
}
