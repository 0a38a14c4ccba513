package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInvalidAmount       = 4001
	CodeInsufficientBalance = 4002
	CodeSelfTransfer        = 4003
	CodeInvalidUserID       = 4004
	CodeUnauthorized        = 4010
	CodeOnboardingRejected  = 4030
	CodeNotFound            = 4040
	CodeConflict            = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when an amount is non-positive, malformed
	// or carries more than two decimal places
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a wallet cannot cover a debit
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSelfTransfer is returned when a transfer resolves to the sender's own wallet
	ErrSelfTransfer = errors.New("transfer to own wallet is not allowed")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletNotFound is returned when no wallet exists for a user
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicatePhone is returned when the phone number is already registered
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrDuplicateToken is returned when a generated token collides with an existing one
	ErrDuplicateToken = errors.New("token already exists")

	// ErrUnauthorized is returned when a token is missing, inactive or expired
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when login credentials don't match a user
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrOnboardingRejected is returned when the reputation screen rejects a registration
	ErrOnboardingRejected = errors.New("onboarding rejected")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrOnboardingRejected):
		return CodeOnboardingRejected
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrWalletNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicatePhone),
		errors.Is(err, ErrDuplicateToken):
		return CodeConflict
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	WalletID    uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on wallet %d: required %s, available %s",
		e.WalletID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"wallet_id":       e.WalletID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(walletID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		WalletID:    walletID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// OnboardingRejectedError carries the reason the reputation screen rejected a registration.
// The reason is always populated: a transport failure, timeout or malformed response is
// reported the same way as an explicit blacklist verdict.
type OnboardingRejectedError struct {
	Email  string
	Reason string
}

// Error implements the error interface
func (e *OnboardingRejectedError) Error() string {
	return fmt.Sprintf("onboarding rejected for %s: %s", e.Email, e.Reason)
}

// Is checks if the target error is an ErrOnboardingRejected
func (e *OnboardingRejectedError) Is(target error) bool {
	return target == ErrOnboardingRejected
}

// LogFields returns a map of fields for structured logging
func (e *OnboardingRejectedError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "onboarding_rejected",
		"email":      e.Email,
		"reason":     e.Reason,
		"error_code": CodeOnboardingRejected,
	}
}

// NewOnboardingRejectedError creates a new detailed onboarding rejection error
func NewOnboardingRejectedError(email, reason string) error {
	return &OnboardingRejectedError{Email: email, Reason: reason}
}

// ConflictError reports which unique field collided during a create or update
type ConflictError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *ConflictError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ConflictError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "conflict",
		"field":      e.Field,
		"error":      e.Err.Error(),
		"error_code": CodeConflict,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsConflictError checks if the error is a uniqueness conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicatePhone) ||
		errors.Is(err, ErrDuplicateToken)
}

// IsUnauthorizedError checks if the error maps to an authentication failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}
