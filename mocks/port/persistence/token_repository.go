package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockAuthTokenRepository is a mock implementation of persistence.AuthTokenRepository
type MockAuthTokenRepository struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockAuthTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetByToken mocks the GetByToken method
func (m *MockAuthTokenRepository) GetByToken(ctx context.Context, token string) (*entity.AuthToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

// Update mocks the Update method
func (m *MockAuthTokenRepository) Update(ctx context.Context, token *entity.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// DeactivateAllForUser mocks the DeactivateAllForUser method
func (m *MockAuthTokenRepository) DeactivateAllForUser(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// DeleteExpired mocks the DeleteExpired method
func (m *MockAuthTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
