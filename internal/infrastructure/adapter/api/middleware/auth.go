package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	// CurrentUserKey holds the authenticated *entity.User
	CurrentUserKey = "current_user"
	// CurrentTokenKey holds the raw bearer token string
	CurrentTokenKey = "current_token"
)

// TokenValidator resolves a bearer token to its owning user.
// Implemented by the session authority.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*entity.User, error)
}

// BearerAuth rejects requests without a valid bearer token and stashes
// the resolved user on the gin context
func BearerAuth(validator TokenValidator, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractBearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Missing bearer token",
			})
			return
		}

		user, err := validator.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			if !domainerr.IsUnauthorizedError(err) {
				logger.Error("Token validation failed", map[string]any{
					"error":      err.Error(),
					"request_id": c.GetString(RequestIDKey),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Set(CurrentTokenKey, raw)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by BearerAuth
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
