package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// TransactionKind represents the direction of a balance change
type TransactionKind string

// Transaction kinds
const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// ReferenceType labels what produced a transaction
type ReferenceType string

// Reference types
const (
	ReferenceFunding    ReferenceType = "funding"
	ReferenceWithdrawal ReferenceType = "withdrawal"
	ReferenceTransfer   ReferenceType = "transfer"
)

// Transaction is an immutable audit record of one balance change. Rows are
// only ever appended; BalanceBefore/BalanceAfter snapshot the wallet around
// the change so the per-wallet chain can be reconciled at any time.
// A transfer's two legs point at each other through ReferenceID.
type Transaction struct {
	ID            uint64
	WalletID      uint64
	Kind          TransactionKind
	AmountInMinor int64
	Description   string
	BalanceBefore int64
	BalanceAfter  int64
	ReferenceID   *uint64
	ReferenceType ReferenceType
	CreatedAt     time.Time
}

// NewTransaction creates an audit record for a single balance change.
// BalanceAfter is derived, never supplied, so the arithmetic invariant
// holds by construction.
func NewTransaction(
	walletID uint64,
	kind TransactionKind,
	amountInMinor int64,
	description string,
	balanceBefore int64,
	referenceType ReferenceType,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if walletID == 0 {
		return nil, fmt.Errorf("%w: transaction requires a wallet", errs.ErrWalletNotFound)
	}
	if amountInMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}
	if !isValidKind(kind) {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", errs.ErrInternalServer, kind)
	}
	if !isValidReferenceType(referenceType) {
		return nil, fmt.Errorf("%w: unknown reference type %q", errs.ErrInternalServer, referenceType)
	}

	balanceAfter := balanceBefore + amountInMinor
	if kind == KindDebit {
		balanceAfter = balanceBefore - amountInMinor
	}
	if balanceAfter < 0 {
		return nil, errs.ErrInsufficientBalance
	}

	return &Transaction{
		WalletID:      walletID,
		Kind:          kind,
		AmountInMinor: amountInMinor,
		Description:   description,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		ReferenceType: referenceType,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// Amount returns the amount as a string with 2 decimal places
func (t *Transaction) Amount() string {
	return FormatAmount(t.AmountInMinor)
}

// IsCredit returns true if this transaction increased the wallet's balance
func (t *Transaction) IsCredit() bool {
	return t.Kind == KindCredit
}

// IsDebit returns true if this transaction decreased the wallet's balance
func (t *Transaction) IsDebit() bool {
	return t.Kind == KindDebit
}

// SetReference links this transaction to its paired leg
func (t *Transaction) SetReference(transactionID uint64) {
	t.ReferenceID = &transactionID
}

// Helper functions

func isValidKind(kind TransactionKind) bool {
	return kind == KindCredit || kind == KindDebit
}

func isValidReferenceType(referenceType ReferenceType) bool {
	return referenceType == ReferenceFunding ||
		referenceType == ReferenceWithdrawal ||
		referenceType == ReferenceTransfer
}
