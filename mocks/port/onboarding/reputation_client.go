package onboarding

import (
	"context"

	obport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/onboarding"
	"github.com/stretchr/testify/mock"
)

// MockReputationClient is a mock implementation of onboarding.ReputationClient
type MockReputationClient struct {
	mock.Mock
}

// Check mocks the Check method
func (m *MockReputationClient) Check(ctx context.Context, email, phoneNumber string) (*obport.Report, error) {
	args := m.Called(ctx, email, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*obport.Report), args.Error(1)
}
