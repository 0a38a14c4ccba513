package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/usecase/wallet"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// WalletHandler exposes balance, movement and history endpoints. Every
// route runs behind the auth middleware, so the acting user is always
// taken from the request context, never from the body.
type WalletHandler struct {
	engine *wallet.Engine
	logger coreport.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(engine *wallet.Engine, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		engine: engine,
		logger: logger,
	}
}

// GetBalance handles GET /wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	w, err := h.engine.GetBalance(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  user.ID,
		Balance: w.FormattedBalance(),
	})
}

// Fund handles POST /wallet/fund
func (h *WalletHandler) Fund(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	txn, err := h.engine.Fund(c.Request.Context(), user.ID, req.Amount, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(txn))
}

// Withdraw handles POST /wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	txn, err := h.engine.Withdraw(c.Request.Context(), user.ID, req.Amount, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(txn))
}

// Transfer handles POST /wallet/transfer
func (h *WalletHandler) Transfer(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeValidation,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.engine.Transfer(c.Request.Context(), user.ID, req.RecipientEmail, req.Amount, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Debit:  toTransactionResponse(result.Debit),
		Credit: toTransactionResponse(result.Credit),
	})
}

// GetTransactions handles GET /wallet/transactions?limit=&offset=
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrUnauthorized)
		return
	}

	limit := parseQueryInt(c, "limit", wallet.DefaultHistoryLimit)
	offset := parseQueryInt(c, "offset", 0)

	txns, err := h.engine.GetTransactionHistory(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	total, err := h.engine.GetTransactionCount(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		items = append(items, toTransactionResponse(txn))
	}

	if limit <= 0 {
		limit = wallet.DefaultHistoryLimit
	}
	if limit > wallet.MaxHistoryLimit {
		limit = wallet.MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Total:        total,
		Limit:        limit,
		Offset:       offset,
		Transactions: items,
	})
}

func parseQueryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func toTransactionResponse(txn *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            txn.ID,
		WalletID:      txn.WalletID,
		Type:          string(txn.Kind),
		Amount:        txn.Amount(),
		Description:   txn.Description,
		BalanceBefore: entity.FormatAmount(txn.BalanceBefore),
		BalanceAfter:  entity.FormatAmount(txn.BalanceAfter),
		ReferenceID:   txn.ReferenceID,
		ReferenceType: string(txn.ReferenceType),
		CreatedAt:     txn.CreatedAt,
	}
}
