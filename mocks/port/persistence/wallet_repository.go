package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock implementation of persistence.WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockWalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

// GetByUserID mocks the GetByUserID method
func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

// GetByUserIDForUpdate mocks the GetByUserIDForUpdate method
func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

// GetByIDForUpdate mocks the GetByIDForUpdate method
func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, walletID uint64) (*entity.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

// UpdateBalance mocks the UpdateBalance method
func (m *MockWalletRepository) UpdateBalance(ctx context.Context, wallet *entity.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}
