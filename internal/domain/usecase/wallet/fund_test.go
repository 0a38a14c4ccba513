package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// makeWallet builds a wallet with a preset balance for engine tests
func makeWallet(t *testing.T, id, userID uint64, balanceMinor int64) *entity.Wallet {
	t.Helper()
	tp := coremocks.NewFixedTimeProvider(testTime)
	w, err := entity.NewWallet(userID, tp)
	require.NoError(t, err)
	w.ID = id
	w.SetBalance(balanceMinor, tp)
	return w
}

func newTestEngine(uow *persistencemocks.MockUnitOfWork, userRepo *persistencemocks.MockUserRepository) *Engine {
	return NewEngine(uow, userRepo, coremocks.NewFixedTimeProvider(testTime), coremocks.NewRelaxedLogger())
}

func TestFund(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful funding appends one credit row", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		wallet := makeWallet(t, 3, 1, 1000)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(wallet, nil).Once()
		walletRepo.On("UpdateBalance", mock.Anything, wallet).Return(nil).Once()
		txnRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.WalletID == 3 &&
				txn.Kind == entity.KindCredit &&
				txn.AmountInMinor == 2550 &&
				txn.BalanceBefore == 1000 &&
				txn.BalanceAfter == 3550 &&
				txn.ReferenceType == entity.ReferenceFunding
		})).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Fund(ctx, 1, "25.50", "payday")

		require.NoError(t, err)
		assert.Equal(t, int64(3550), wallet.Balance())
		assert.Equal(t, "25.50", txn.Amount())
		assert.Equal(t, "payday", txn.Description)
		uow.AssertExpectations(t)
		walletRepo.AssertExpectations(t)
		txnRepo.AssertExpectations(t)
	})

	t.Run("Invalid amount fails before any transaction starts", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})

		for _, amount := range []string{"", "0", "-5", "1.234", "abc"} {
			txn, err := engine.Fund(ctx, 1, amount, "")
			assert.Nil(t, txn)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "amount %q", amount)
		}
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Zero user ID is rejected", func(t *testing.T) {
		engine := newTestEngine(&persistencemocks.MockUnitOfWork{}, &persistencemocks.MockUserRepository{})
		txn, err := engine.Fund(ctx, 0, "1.00", "")
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Missing wallet rolls back", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(nil, errs.ErrWalletNotFound).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Fund(ctx, 1, "1.00", "")

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrWalletNotFound)
		uow.AssertCalled(t, "Rollback", mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("Audit row write failure rolls back the balance write", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		wallet := makeWallet(t, 3, 1, 1000)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)
		walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(1)).Return(wallet, nil).Once()
		walletRepo.On("UpdateBalance", mock.Anything, wallet).Return(nil).Once()
		txnRepo.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, &persistencemocks.MockUserRepository{})
		txn, err := engine.Fund(ctx, 1, "1.00", "")

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		uow.AssertCalled(t, "Rollback", mock.Anything)
	})
}
