package handlers

import (
	"net/http"

	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// RegisterUser creates an account. Mounted behind the admin role.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterUser: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "RegisterUser: Error from authService.RegisterUser")
		respondServiceError(c, err, "register user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	authResp, err := h.authService.LoginUser(c.Request.Context(), req)
	if err != nil {
		utils.LogWarn("Login failed", map[string]interface{}{"username": req.Username, "client_ip": c.ClientIP()})
		respondServiceError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile for userID "+utils.Int64ToStr(actor.UserID))
		respondServiceError(c, err, "retrieve user profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutUser acknowledges a logout. Tokens are stateless; the client discards its copy.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}
