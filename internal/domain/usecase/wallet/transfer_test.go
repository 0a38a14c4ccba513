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

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful transfer cross-references both legs", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		userRepo := &persistencemocks.MockUserRepository{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		senderWallet := makeWallet(t, 5, 1, 10000)
		recipientWallet := makeWallet(t, 3, 2, 500)

		userRepo.On("GetByEmail", mock.Anything, "bob@example.com").
			Return(&entity.User{ID: 2, Email: "bob@example.com"}, nil).Once()

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)

		walletRepo.On("GetByUserID", mock.Anything, uint64(1)).Return(senderWallet, nil).Once()
		walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(recipientWallet, nil).Once()

		// Locks must be taken in ascending wallet ID order: 3 then 5
		var lockOrder []uint64
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(3)).Run(func(mock.Arguments) {
			lockOrder = append(lockOrder, 3)
		}).Return(recipientWallet, nil).Once()
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(5)).Run(func(mock.Arguments) {
			lockOrder = append(lockOrder, 5)
		}).Return(senderWallet, nil).Once()

		walletRepo.On("UpdateBalance", mock.Anything, senderWallet).Return(nil).Once()
		walletRepo.On("UpdateBalance", mock.Anything, recipientWallet).Return(nil).Once()

		var nextTxnID uint64 = 100
		txnRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			nextTxnID++
			args.Get(1).(*entity.Transaction).ID = nextTxnID
		}).Return(nil).Twice()
		txnRepo.On("SetReference", mock.Anything, uint64(101), uint64(102)).Return(nil).Once()

		uow.On("Commit", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, userRepo)
		result, err := engine.Transfer(ctx, 1, "bob@example.com", "25.00", "lunch")

		require.NoError(t, err)
		assert.Equal(t, []uint64{3, 5}, lockOrder)

		// Balances moved
		assert.Equal(t, int64(7500), senderWallet.Balance())
		assert.Equal(t, int64(3000), recipientWallet.Balance())

		// Debit leg
		debit := result.Debit
		assert.Equal(t, uint64(5), debit.WalletID)
		assert.True(t, debit.IsDebit())
		assert.Equal(t, int64(10000), debit.BalanceBefore)
		assert.Equal(t, int64(7500), debit.BalanceAfter)
		assert.Equal(t, entity.ReferenceTransfer, debit.ReferenceType)

		// Credit leg
		credit := result.Credit
		assert.Equal(t, uint64(3), credit.WalletID)
		assert.True(t, credit.IsCredit())
		assert.Equal(t, int64(500), credit.BalanceBefore)
		assert.Equal(t, int64(3000), credit.BalanceAfter)

		// Legs reference each other
		require.NotNil(t, debit.ReferenceID)
		require.NotNil(t, credit.ReferenceID)
		assert.Equal(t, credit.ID, *debit.ReferenceID)
		assert.Equal(t, debit.ID, *credit.ReferenceID)

		uow.AssertExpectations(t)
		walletRepo.AssertExpectations(t)
		txnRepo.AssertExpectations(t)
	})

	t.Run("Lock order holds when sender wallet ID is lower", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		userRepo := &persistencemocks.MockUserRepository{}
		walletRepo := &persistencemocks.MockWalletRepository{}
		txnRepo := &persistencemocks.MockTransactionRepository{}

		senderWallet := makeWallet(t, 2, 1, 10000)
		recipientWallet := makeWallet(t, 8, 2, 0)

		userRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(&entity.User{ID: 2}, nil).Once()
		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		uow.On("GetTransactionRepository", mock.Anything).Return(txnRepo)
		walletRepo.On("GetByUserID", mock.Anything, uint64(1)).Return(senderWallet, nil).Once()
		walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(recipientWallet, nil).Once()

		var lockOrder []uint64
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(2)).Run(func(mock.Arguments) {
			lockOrder = append(lockOrder, 2)
		}).Return(senderWallet, nil).Once()
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(8)).Run(func(mock.Arguments) {
			lockOrder = append(lockOrder, 8)
		}).Return(recipientWallet, nil).Once()

		walletRepo.On("UpdateBalance", mock.Anything, mock.Anything).Return(nil).Twice()
		txnRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 1
		}).Return(nil).Twice()
		txnRepo.On("SetReference", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, userRepo)
		_, err := engine.Transfer(ctx, 1, "bob@example.com", "1.00", "")

		require.NoError(t, err)
		assert.Equal(t, []uint64{2, 8}, lockOrder)
	})

	t.Run("Transfer to self is rejected before any transaction", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		userRepo := &persistencemocks.MockUserRepository{}

		userRepo.On("GetByEmail", mock.Anything, "me@example.com").
			Return(&entity.User{ID: 1}, nil).Once()

		engine := newTestEngine(uow, userRepo)
		result, err := engine.Transfer(ctx, 1, "me@example.com", "1.00", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrSelfTransfer)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Unknown recipient is rejected", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		userRepo := &persistencemocks.MockUserRepository{}

		userRepo.On("GetByEmail", mock.Anything, mock.Anything).
			Return(nil, errs.ErrUserNotFound).Once()

		engine := newTestEngine(uow, userRepo)
		result, err := engine.Transfer(ctx, 1, "ghost@example.com", "1.00", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Insufficient balance rejects under the lock and rolls back", func(t *testing.T) {
		uow := &persistencemocks.MockUnitOfWork{}
		userRepo := &persistencemocks.MockUserRepository{}
		walletRepo := &persistencemocks.MockWalletRepository{}

		senderWallet := makeWallet(t, 5, 1, 100)
		recipientWallet := makeWallet(t, 3, 2, 0)

		userRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(&entity.User{ID: 2}, nil).Once()
		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetWalletRepository", mock.Anything).Return(walletRepo)
		walletRepo.On("GetByUserID", mock.Anything, uint64(1)).Return(senderWallet, nil).Once()
		walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(recipientWallet, nil).Once()
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(3)).Return(recipientWallet, nil).Once()
		walletRepo.On("GetByIDForUpdate", mock.Anything, uint64(5)).Return(senderWallet, nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		engine := newTestEngine(uow, userRepo)
		result, err := engine.Transfer(ctx, 1, "bob@example.com", "25.00", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(100), senderWallet.Balance())
		assert.Equal(t, int64(0), recipientWallet.Balance())
		walletRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("Invalid amount is rejected before recipient lookup", func(t *testing.T) {
		userRepo := &persistencemocks.MockUserRepository{}
		engine := newTestEngine(&persistencemocks.MockUnitOfWork{}, userRepo)

		result, err := engine.Transfer(ctx, 1, "bob@example.com", "-1", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
