package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock implementation of persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

// SetReference mocks the SetReference method
func (m *MockTransactionRepository) SetReference(ctx context.Context, transactionID, referenceID uint64) error {
	args := m.Called(ctx, transactionID, referenceID)
	return args.Error(0)
}

// ListByWalletID mocks the ListByWalletID method
func (m *MockTransactionRepository) ListByWalletID(ctx context.Context, walletID uint64, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

// CountByWalletID mocks the CountByWalletID method
func (m *MockTransactionRepository) CountByWalletID(ctx context.Context, walletID uint64) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}
