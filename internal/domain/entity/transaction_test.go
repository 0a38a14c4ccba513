package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tp := coremocks.NewFixedTimeProvider(fixedTime)

	t.Run("Credit derives balance after", func(t *testing.T) {
		txn, err := NewTransaction(7, KindCredit, 500, "top up", 1000, ReferenceFunding, tp)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), txn.BalanceBefore)
		assert.Equal(t, int64(1500), txn.BalanceAfter)
		assert.Equal(t, "5.00", txn.Amount())
		assert.True(t, txn.IsCredit())
		assert.Equal(t, fixedTime, txn.CreatedAt)
	})

	t.Run("Debit derives balance after", func(t *testing.T) {
		txn, err := NewTransaction(7, KindDebit, 300, "", 1000, ReferenceWithdrawal, tp)
		require.NoError(t, err)
		assert.Equal(t, int64(700), txn.BalanceAfter)
		assert.True(t, txn.IsDebit())
	})

	t.Run("Debit below zero is rejected", func(t *testing.T) {
		txn, err := NewTransaction(7, KindDebit, 1001, "", 1000, ReferenceWithdrawal, tp)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	})

	t.Run("Zero amount is rejected", func(t *testing.T) {
		txn, err := NewTransaction(7, KindCredit, 0, "", 1000, ReferenceFunding, tp)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		txn, err := NewTransaction(7, KindCredit, -5, "", 1000, ReferenceFunding, tp)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Missing wallet is rejected", func(t *testing.T) {
		txn, err := NewTransaction(0, KindCredit, 100, "", 0, ReferenceFunding, tp)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrWalletNotFound)
	})

	t.Run("Unknown kind is rejected", func(t *testing.T) {
		txn, err := NewTransaction(7, TransactionKind("upside"), 100, "", 0, ReferenceFunding, tp)
		assert.Nil(t, txn)
		assert.Error(t, err)
	})

	t.Run("Unknown reference type is rejected", func(t *testing.T) {
		txn, err := NewTransaction(7, KindCredit, 100, "", 0, ReferenceType("mystery"), tp)
		assert.Nil(t, txn)
		assert.Error(t, err)
	})
}

func TestTransactionSetReference(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tp := coremocks.NewFixedTimeProvider(fixedTime)

	txn, err := NewTransaction(7, KindDebit, 100, "", 500, ReferenceTransfer, tp)
	require.NoError(t, err)
	require.Nil(t, txn.ReferenceID)

	txn.SetReference(99)
	require.NotNil(t, txn.ReferenceID)
	assert.Equal(t, uint64(99), *txn.ReferenceID)
}
