package core

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of core.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// MockTokenGenerator is a mock implementation of core.TokenGenerator
type MockTokenGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockTokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
