package wallet

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	persistencemocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful withdrawal appends one debit row", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		wallet := makeWallet(t, 3, 1, 5000)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(wallet, nil).Once()
		walletRepo.On("UpdateBalance", mock.Anything, wallet).Return(nil).Once()
		txnRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Kind == entity.KindDebit &&
				txn.AmountInMinor == 2000 &&
				txn.BalanceBefore == 5000 &&
				txn.BalanceAfter == 3000 &&
				txn.ReferenceType == entity.ReferenceWithdrawal
		})).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Withdraw(ctx, 1, "20.00", "rent")

		require.NoError(t, err)
		assert.Equal(t, int64(3000), wallet.Balance())
		assert.Equal(t, "20.00", txn.Amount())
		uow.AssertExpectations(t)
	})

	t.Run("Withdrawal to exactly zero succeeds", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		wallet := makeWallet(t, 3, 1, 2000)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(wallet, nil).Once()
		walletRepo.On("UpdateBalance", mock.Anything, wallet).Return(nil).Once()
		txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Withdraw(ctx, 1, "20.00", "")

		require.NoError(t, err)
		assert.Equal(t, int64(0), wallet.Balance())
		assert.Equal(t, int64(0), txn.BalanceAfter)
	})

	t.Run("Insufficient balance rejects with details and rolls back", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}

		wallet := makeWallet(t, 3, 1, 1999)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(wallet, nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Withdraw(ctx, 1, "20.00", "")

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		var detailed *errs.InsufficientBalanceError
		require.ErrorAs(t, err, &detailed)
		assert.Equal(t, uint64(3), detailed.WalletID)
		assert.Equal(t, "20.00", detailed.Amount)
		assert.Equal(t, "19.99", detailed.CurrBalance)

		// Balance untouched, no balance write attempted
		assert.Equal(t, int64(1999), wallet.Balance())
		walletRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("Invalid amount fails before any transaction starts", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})

		txn, err := engine.Withdraw(ctx, 1, "0.00", "")
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
