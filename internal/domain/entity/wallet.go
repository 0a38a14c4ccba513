package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// Wallet holds a user's balance in minor units. Exactly one wallet exists
// per user; the balance field is private so every mutation goes through
// Credit/Debit and the >= 0 invariant cannot be bypassed.
type Wallet struct {
	ID        uint64
	UserID    uint64
	balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet creates a zero-balance wallet for the given user
func NewWallet(userID uint64, timeProvider coreport.TimeProvider) (*Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &Wallet{
		UserID:    userID,
		balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in minor units
func (w *Wallet) Balance() int64 {
	return w.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (w *Wallet) FormattedBalance() string {
	return FormatAmount(w.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (w *Wallet) SetBalance(minorUnits int64, timeProvider coreport.TimeProvider) {
	w.balance = minorUnits
	w.UpdatedAt = timeProvider.Now()
}

// CanDebit checks whether the wallet covers the given debit
func (w *Wallet) CanDebit(minorUnits int64) bool {
	return w.balance >= minorUnits
}

// Credit adds the amount to the balance
func (w *Wallet) Credit(minorUnits int64, timeProvider coreport.TimeProvider) {
	w.balance += minorUnits
	w.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the balance.
// Returns ErrInsufficientBalance when the wallet cannot cover it; the
// caller must hold the row lock so this check is authoritative.
func (w *Wallet) Debit(minorUnits int64, timeProvider coreport.TimeProvider) error {
	if w.balance < minorUnits {
		return errs.ErrInsufficientBalance
	}

	w.balance -= minorUnits
	w.UpdatedAt = timeProvider.Now()
	return nil
}
