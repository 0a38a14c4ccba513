package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to a transport response. Caller
// mistakes echo the precise reason; internal failures never leak store
// error text.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrSelfTransfer),
		errors.Is(err, domainerr.ErrInvalidUserID):
		status = http.StatusBadRequest
		message = err.Error()
	case domainerr.IsUnauthorizedError(err):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domainerr.ErrOnboardingRejected):
		status = http.StatusForbidden
		message = err.Error()
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case domainerr.IsConflictError(err):
		status = http.StatusConflict
		message = err.Error()
	case domainerr.IsInsufficientBalanceError(err):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	default:
		logger.Error("Unhandled error in API request", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
