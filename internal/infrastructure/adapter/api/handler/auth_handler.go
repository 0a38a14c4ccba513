package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/usecase/session"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and session endpoints
type AuthHandler struct {
	directory *account.Directory
	authority *session.Authority
	logger    coreport.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(directory *account.Directory, authority *session.Authority, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		directory: directory,
		authority: authority,
		logger:    logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	user, err := h.directory.Register(c.Request.Context(), account.RegisterInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	token, user, err := h.authority.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: dto.TokenResponse{
			Token:     token.Token,
			ExpiresAt: token.ExpiresAt,
		},
		User: toUserResponse(user),
	})
}

// Logout handles POST /auth/logout, invalidating the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.CurrentTokenKey)
	if raw == "" {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	if err := h.authority.Invalidate(c.Request.Context(), raw); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LogoutAll handles POST /auth/logout-all, invalidating every token the
// authenticated user holds
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	if err := h.authority.InvalidateAll(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
	}
}
