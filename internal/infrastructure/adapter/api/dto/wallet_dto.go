package dto

import "time"

// BalanceResponse represents the API response for a wallet balance
type BalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}

// AmountRequest represents a fund or withdraw request
type AmountRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// TransferRequest represents a transfer request
type TransferRequest struct {
	RecipientEmail string `json:"recipientEmail" binding:"required,email"`
	Amount         string `json:"amount" binding:"required"`
	Description    string `json:"description"`
}

// TransactionResponse represents one audit row
type TransactionResponse struct {
	ID            uint64    `json:"id"`
	WalletID      uint64    `json:"walletId"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description,omitempty"`
	BalanceBefore string    `json:"balanceBefore"`
	BalanceAfter  string    `json:"balanceAfter"`
	ReferenceID   *uint64   `json:"referenceId,omitempty"`
	ReferenceType string    `json:"referenceType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransferResponse carries the two legs of a completed transfer
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// TransactionListResponse is a newest-first page plus pagination metadata
type TransactionListResponse struct {
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	Transactions []TransactionResponse `json:"transactions"`
}
