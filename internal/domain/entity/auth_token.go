package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// AuthToken is an opaque bearer credential. Tokens are soft-invalidated
// (IsActive cleared) on logout and expiry detection; a user may hold many
// active tokens at once for multi-device sessions.
type AuthToken struct {
	ID         uint64
	UserID     uint64
	Token      string
	ExpiresAt  time.Time
	IsActive   bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// NewAuthToken creates an active token expiring after ttl
func NewAuthToken(userID uint64, token string, ttl time.Duration, timeProvider coreport.TimeProvider) (*AuthToken, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if token == "" {
		return nil, errs.ErrUnauthorized
	}

	now := timeProvider.Now()
	return &AuthToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		IsActive:  true,
		CreatedAt: now,
	}, nil
}

// IsExpired reports whether the token is past its expiry
func (t *AuthToken) IsExpired(timeProvider coreport.TimeProvider) bool {
	return !timeProvider.Now().Before(t.ExpiresAt)
}

// IsValid reports whether the token is active and unexpired
func (t *AuthToken) IsValid(timeProvider coreport.TimeProvider) bool {
	return t.IsActive && !t.IsExpired(timeProvider)
}

// Deactivate soft-invalidates the token
func (t *AuthToken) Deactivate() {
	t.IsActive = false
}

// Touch records a successful use of the token
func (t *AuthToken) Touch(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	t.LastUsedAt = &now
}
