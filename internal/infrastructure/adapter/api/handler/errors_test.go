package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	coremocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name         string
		err          error
		expectedHTTP int
		expectedCode int
	}{
		{"Invalid amount", domainerr.ErrInvalidAmount, http.StatusBadRequest, domainerr.CodeInvalidAmount},
		{"Self transfer", domainerr.ErrSelfTransfer, http.StatusBadRequest, domainerr.CodeSelfTransfer},
		{"Invalid user ID", domainerr.ErrInvalidUserID, http.StatusBadRequest, domainerr.CodeInvalidUserID},
		{"Unauthorized", domainerr.ErrUnauthorized, http.StatusUnauthorized, domainerr.CodeUnauthorized},
		{"Invalid credentials", domainerr.ErrInvalidCredentials, http.StatusUnauthorized, domainerr.CodeUnauthorized},
		{"Onboarding rejected", domainerr.NewOnboardingRejectedError("a@b.com", "blacklisted"), http.StatusForbidden, domainerr.CodeOnboardingRejected},
		{"User not found", domainerr.ErrUserNotFound, http.StatusNotFound, domainerr.CodeNotFound},
		{"Wallet not found", domainerr.ErrWalletNotFound, http.StatusNotFound, domainerr.CodeNotFound},
		{"Duplicate email", &domainerr.ConflictError{Field: "email", Err: domainerr.ErrDuplicateEmail}, http.StatusConflict, domainerr.CodeConflict},
		{"Insufficient balance", domainerr.NewInsufficientBalanceError(3, "20.00", "19.99"), http.StatusUnprocessableEntity, domainerr.CodeInsufficientBalance},
		{"Unknown error", errors.New("pq: deadlock detected"), http.StatusInternalServerError, domainerr.CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			respondError(c, coremocks.NewRelaxedLogger(), tc.err)

			assert.Equal(t, tc.expectedHTTP, recorder.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}

	t.Run("Internal errors never leak their message", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

		respondError(c, coremocks.NewRelaxedLogger(), errors.New("pq: relation wallets does not exist"))

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body.Message)
		assert.NotContains(t, body.Message, "pq:")
	})
}
