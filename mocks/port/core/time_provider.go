package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// Now mocks the Now method
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since mocks the Since method
func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

// Until mocks the Until method
func (m *MockTimeProvider) Until(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

// WithTimeout mocks the WithTimeout method
func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}

// NewFixedTimeProvider returns a mock pinned to the given instant
func NewFixedTimeProvider(now time.Time) *MockTimeProvider {
	tp := &MockTimeProvider{}
	tp.On("Now").Return(now).Maybe()
	tp.On("Since", mock.Anything).Return(time.Duration(0)).Maybe()
	tp.On("Until", mock.Anything).Return(time.Duration(0)).Maybe()
	return tp
}
