package session

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
)

// DefaultTokenTTL is used when no TTL is configured
const DefaultTokenTTL = 24 * time.Hour

// CredentialVerifier resolves an email/password pair to a user.
// Implemented by the account directory.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error)
}

// Authority issues and validates opaque bearer tokens. Tokens are soft
// invalidated on logout and on detected expiry; physical deletion is left
// to the maintenance sweep.
type Authority struct {
	tokenRepo    persistence.AuthTokenRepository
	userRepo     persistence.UserRepository
	verifier     CredentialVerifier
	tokenGen     coreport.TokenGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	tokenTTL     time.Duration
}

// NewAuthority creates a new session authority
func NewAuthority(
	tokenRepo persistence.AuthTokenRepository,
	userRepo persistence.UserRepository,
	verifier CredentialVerifier,
	tokenGen coreport.TokenGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	tokenTTL time.Duration,
) *Authority {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Authority{
		tokenRepo:    tokenRepo,
		userRepo:     userRepo,
		verifier:     verifier,
		tokenGen:     tokenGen,
		timeProvider: timeProvider,
		logger:       logger,
		tokenTTL:     tokenTTL,
	}
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password produce the same error.
func (a *Authority) Login(ctx context.Context, email, password string) (*entity.AuthToken, *entity.User, error) {
	user, err := a.verifier.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	token, err := a.CreateToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
	})
	return token, user.Sanitized(), nil
}

// CreateToken generates and stores a new active token for the user
func (a *Authority) CreateToken(ctx context.Context, userID uint64) (*entity.AuthToken, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	raw, err := a.tokenGen.Generate()
	if err != nil {
		a.logger.Error("Failed to generate token", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	token, err := entity.NewAuthToken(userID, raw, a.tokenTTL, a.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

// ValidateToken resolves a bearer token to its owning user. Expired
// tokens are deactivated as a side effect so later attempts fail fast;
// successful validation records the use.
func (a *Authority) ValidateToken(ctx context.Context, raw string) (*entity.User, error) {
	if raw == "" {
		return nil, errs.ErrUnauthorized
	}

	token, err := a.tokenRepo.GetByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}

	if !token.IsActive {
		return nil, errs.ErrUnauthorized
	}

	if token.IsExpired(a.timeProvider) {
		token.Deactivate()
		// Deactivation on detected expiry is opportunistic; validation
		// fails the same way if the write doesn't land.
		if err := a.tokenRepo.Update(ctx, token); err != nil {
			a.logger.Warn("Failed to deactivate expired token", map[string]any{
				"user_id": token.UserID,
				"error":   err.Error(),
			})
		}
		return nil, errs.ErrUnauthorized
	}

	token.Touch(a.timeProvider)
	if err := a.tokenRepo.Update(ctx, token); err != nil {
		a.logger.Warn("Failed to record token use", map[string]any{
			"user_id": token.UserID,
			"error":   err.Error(),
		})
	}

	user, err := a.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}

	return user.Sanitized(), nil
}

// Invalidate soft-deactivates a single token (logout)
func (a *Authority) Invalidate(ctx context.Context, raw string) error {
	token, err := a.tokenRepo.GetByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			return errs.ErrUnauthorized
		}
		return err
	}

	token.Deactivate()
	if err := a.tokenRepo.Update(ctx, token); err != nil {
		return err
	}

	a.logger.Info("Token invalidated", map[string]any{
		"user_id": token.UserID,
	})
	return nil
}

// InvalidateAll soft-deactivates every token the user holds (logout-all)
func (a *Authority) InvalidateAll(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}

	if err := a.tokenRepo.DeactivateAllForUser(ctx, userID); err != nil {
		return err
	}

	a.logger.Info("All tokens invalidated for user", map[string]any{
		"user_id": userID,
	})
	return nil
}

// PurgeExpired deletes token rows past their expiry. Intended for a
// periodic maintenance task, not the request path.
func (a *Authority) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := a.tokenRepo.DeleteExpired(ctx, a.timeProvider.Now())
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		a.logger.Info("Purged expired tokens", map[string]any{
			"count": purged,
		})
	}
	return purged, nil
}
