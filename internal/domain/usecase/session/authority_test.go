package session

import (
	"context"
	"errors"
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

// mockCredentialVerifier is a test double for the account directory
type mockCredentialVerifier struct {
	mock.Mock
}

func (m *mockCredentialVerifier) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newTestAuthority(
	tokenRepo *persistencemocks.MockAuthTokenRepository,
	userRepo *persistencemocks.MockUserRepository,
	verifier *mockCredentialVerifier,
	tokenGen *coremocks.MockTokenGenerator,
) *Authority {
	return NewAuthority(tokenRepo, userRepo, verifier, tokenGen,
		coremocks.NewFixedTimeProvider(testTime), coremocks.NewRelaxedLogger(), time.Hour)
}

// issuedToken builds an active token created at testTime with the given TTL
func issuedToken(t *testing.T, userID uint64, raw string, ttl time.Duration) *entity.AuthToken {
	t.Helper()
	token, err := entity.NewAuthToken(userID, raw, ttl, coremocks.NewFixedTimeProvider(testTime))
	require.NoError(t, err)
	return token
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid credentials issue a fresh token", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		userRepo := &persistencemocks.MockUserRepository{}
		verifier := &mockCredentialVerifier{}
		tokenGen := &coremocks.MockTokenGenerator{}

		verifier.On("VerifyCredentials", mock.Anything, "a@b.com", "pass").
			Return(&entity.User{ID: 1, Email: "a@b.com", PasswordHash: "hashed"}, nil).Once()
		tokenGen.On("Generate").Return("opaque-token", nil).Once()
		tokenRepo.On("Create", mock.Anything, mock.MatchedBy(func(tok *entity.AuthToken) bool {
			return tok.UserID == 1 && tok.Token == "opaque-token" && tok.IsActive &&
				tok.ExpiresAt.Equal(testTime.Add(time.Hour))
		})).Return(nil).Once()

		authority := newTestAuthority(tokenRepo, userRepo, verifier, tokenGen)
		token, user, err := authority.Login(ctx, "a@b.com", "pass")

		require.NoError(t, err)
		assert.Equal(t, "opaque-token", token.Token)
		assert.Equal(t, uint64(1), user.ID)
		assert.Empty(t, user.PasswordHash)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("Bad credentials propagate unchanged", func(t *testing.T) {
		verifier := &mockCredentialVerifier{}
		verifier.On("VerifyCredentials", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errs.ErrInvalidCredentials).Once()

		authority := newTestAuthority(&persistencemocks.MockAuthTokenRepository{},
			&persistencemocks.MockUserRepository{}, verifier, &coremocks.MockTokenGenerator{})
		token, user, err := authority.Login(ctx, "a@b.com", "wrong")

		assert.Nil(t, token)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Generator failure maps to internal error", func(t *testing.T) {
		verifier := &mockCredentialVerifier{}
		tokenGen := &coremocks.MockTokenGenerator{}
		verifier.On("VerifyCredentials", mock.Anything, mock.Anything, mock.Anything).
			Return(&entity.User{ID: 1}, nil).Once()
		tokenGen.On("Generate").Return("", errors.New("entropy exhausted")).Once()

		authority := newTestAuthority(&persistencemocks.MockAuthTokenRepository{},
			&persistencemocks.MockUserRepository{}, verifier, tokenGen)
		_, _, err := authority.Login(ctx, "a@b.com", "pass")

		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Active unexpired token resolves its user", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		userRepo := &persistencemocks.MockUserRepository{}

		token := issuedToken(t, 1, "raw", time.Hour)
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()
		tokenRepo.On("Update", mock.Anything, token).Return(nil).Once()
		userRepo.On("GetByID", mock.Anything, uint64(1)).
			Return(&entity.User{ID: 1, PasswordHash: "hashed"}, nil).Once()

		authority := newTestAuthority(tokenRepo, userRepo, &mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "raw")

		require.NoError(t, err)
		assert.Equal(t, uint64(1), user.ID)
		assert.Empty(t, user.PasswordHash)
		assert.NotNil(t, token.LastUsedAt)
	})

	t.Run("Empty token is unauthorized", func(t *testing.T) {
		authority := newTestAuthority(&persistencemocks.MockAuthTokenRepository{},
			&persistencemocks.MockUserRepository{}, &mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Unknown token is unauthorized", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		tokenRepo.On("GetByToken", mock.Anything, "ghost").Return(nil, errs.ErrUnauthorized).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Deactivated token is unauthorized", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		token := issuedToken(t, 1, "raw", time.Hour)
		token.Deactivate()
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "raw")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Expired token is deactivated as a side effect", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		token := issuedToken(t, 1, "raw", -time.Minute)
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()
		tokenRepo.On("Update", mock.Anything, mock.MatchedBy(func(tok *entity.AuthToken) bool {
			return !tok.IsActive
		})).Return(nil).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "raw")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.False(t, token.IsActive)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("Failed use-recording does not fail validation", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		userRepo := &persistencemocks.MockUserRepository{}

		token := issuedToken(t, 1, "raw", time.Hour)
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()
		tokenRepo.On("Update", mock.Anything, token).Return(errs.ErrDatabaseConnection).Once()
		userRepo.On("GetByID", mock.Anything, uint64(1)).Return(&entity.User{ID: 1}, nil).Once()

		authority := newTestAuthority(tokenRepo, userRepo, &mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "raw")

		require.NoError(t, err)
		assert.Equal(t, uint64(1), user.ID)
	})

	t.Run("Token whose user vanished is unauthorized", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		userRepo := &persistencemocks.MockUserRepository{}

		token := issuedToken(t, 1, "raw", time.Hour)
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()
		tokenRepo.On("Update", mock.Anything, token).Return(nil).Once()
		userRepo.On("GetByID", mock.Anything, uint64(1)).Return(nil, errs.ErrUserNotFound).Once()

		authority := newTestAuthority(tokenRepo, userRepo, &mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		user, err := authority.ValidateToken(ctx, "raw")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Logout deactivates the token", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		token := issuedToken(t, 1, "raw", time.Hour)
		tokenRepo.On("GetByToken", mock.Anything, "raw").Return(token, nil).Once()
		tokenRepo.On("Update", mock.Anything, mock.MatchedBy(func(tok *entity.AuthToken) bool {
			return !tok.IsActive
		})).Return(nil).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})

		require.NoError(t, authority.Invalidate(ctx, "raw"))
		assert.False(t, token.IsActive)
	})

	t.Run("Logout of unknown token is unauthorized", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		tokenRepo.On("GetByToken", mock.Anything, "ghost").Return(nil, errs.ErrUnauthorized).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})

		assert.ErrorIs(t, authority.Invalidate(ctx, "ghost"), errs.ErrUnauthorized)
	})
}

func TestInvalidateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Logout-all deactivates every token of the user", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		tokenRepo.On("DeactivateAllForUser", mock.Anything, uint64(1)).Return(nil).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})

		require.NoError(t, authority.InvalidateAll(ctx, 1))
		tokenRepo.AssertExpectations(t)
	})

	t.Run("Zero user ID is rejected", func(t *testing.T) {
		authority := newTestAuthority(&persistencemocks.MockAuthTokenRepository{},
			&persistencemocks.MockUserRepository{}, &mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		assert.ErrorIs(t, authority.InvalidateAll(ctx, 0), errs.ErrInvalidUserID)
	})
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Purges rows past the cutoff", func(t *testing.T) {
		tokenRepo := &persistencemocks.MockAuthTokenRepository{}
		tokenRepo.On("DeleteExpired", mock.Anything, testTime).Return(int64(3), nil).Once()

		authority := newTestAuthority(tokenRepo, &persistencemocks.MockUserRepository{},
			&mockCredentialVerifier{}, &coremocks.MockTokenGenerator{})
		purged, err := authority.PurgeExpired(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), purged)
	})
}

func TestDefaultTokenTTL(t *testing.T) {
	// A non-positive TTL falls back to the default
	authority := NewAuthority(&persistencemocks.MockAuthTokenRepository{},
		&persistencemocks.MockUserRepository{}, &mockCredentialVerifier{},
		&coremocks.MockTokenGenerator{}, coremocks.NewFixedTimeProvider(testTime),
		coremocks.NewRelaxedLogger(), 0)

	assert.Equal(t, DefaultTokenTTL, authority.tokenTTL)
}
