package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// User represents an identity record owned by the account directory.
// PasswordHash is opaque to the ledger and must never be exposed to
// non-authentication callers.
type User struct {
	ID           uint64
	Email        string
	PhoneNumber  string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user with normalized identifiers
func NewUser(email, phoneNumber, passwordHash, firstName, lastName string, timeProvider coreport.TimeProvider) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phoneNumber = strings.TrimSpace(phoneNumber)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", errs.ErrInvalidUserID)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email %q", errs.ErrInvalidUserID, email)
	}
	if phoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", errs.ErrInvalidUserID)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password hash is required", errs.ErrInvalidUserID)
	}

	now := timeProvider.Now()
	return &User{
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Sanitized returns a copy safe to hand to non-authentication callers
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
