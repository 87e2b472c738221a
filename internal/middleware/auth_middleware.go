package middleware

import (
	"net/http"
	"strings"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
	ContextGuideID  = "guideID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)
		if claims.GuideID != nil {
			c.Set(ContextGuideID, *claims.GuideID)
		}

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(ContextUserRole)
		if roleStr == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"User role not found in token claims", "AuthMiddleware must run first"))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource", "Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

// ActorFromContext builds the caller identity set by AuthMiddleware. The bool is false on
// routes that did not pass through it.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return models.Actor{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return models.Actor{}, false
	}
	actor := models.Actor{
		UserID:   id,
		Username: c.GetString(ContextUsername),
		Role:     strings.ToLower(c.GetString(ContextUserRole)),
	}
	if raw, ok := c.Get(ContextGuideID); ok {
		if guideID, ok := raw.(int64); ok {
			actor.GuideID = &guideID
		}
	}
	return actor, true
}
