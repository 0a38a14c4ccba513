package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/usecase/onboarding"
)

// WalletCreator creates a wallet inside the caller's unit of work.
// Implemented by the wallet engine; the directory needs it so a user row
// never commits without its wallet.
type WalletCreator interface {
	CreateWallet(ctx context.Context, userID uint64) (*entity.Wallet, error)
}

// AdmissionChecker screens prospective users before their account exists
type AdmissionChecker interface {
	CheckAdmissible(ctx context.Context, email, phoneNumber string) onboarding.Verdict
}

// Directory owns user identity and profile operations
type Directory struct {
	userRepo      persistence.UserRepository
	uow           persistence.UnitOfWork
	guard         AdmissionChecker
	walletCreator WalletCreator
	hasher        coreport.PasswordHasher
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewDirectory creates a new account directory
func NewDirectory(
	userRepo persistence.UserRepository,
	uow persistence.UnitOfWork,
	guard AdmissionChecker,
	walletCreator WalletCreator,
	hasher coreport.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Directory {
	return &Directory{
		userRepo:      userRepo,
		uow:           uow,
		guard:         guard,
		walletCreator: walletCreator,
		hasher:        hasher,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// RegisterInput carries the fields needed to open an account
type RegisterInput struct {
	Email       string
	PhoneNumber string
	Password    string
	FirstName   string
	LastName    string
}

// UpdateInput carries optional profile changes; nil fields are left untouched
type UpdateInput struct {
	PhoneNumber *string
	FirstName   *string
	LastName    *string
}

// Register admits a new user and opens their wallet in one atomic scope.
// The reputation screen runs first and is fail-closed; duplicate email or
// phone is checked before any write, with the store's unique indexes as
// the authoritative backstop under concurrency.
func (d *Directory) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	verdict := d.guard.CheckAdmissible(ctx, input.Email, input.PhoneNumber)
	if !verdict.Admissible {
		return nil, errs.NewOnboardingRejectedError(input.Email, verdict.Reason)
	}

	if _, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email))); err == nil {
		return nil, &errs.ConflictError{Field: "email", Err: errs.ErrDuplicateEmail}
	} else if !errs.IsNotFoundError(err) {
		return nil, err
	}
	if _, err := d.userRepo.GetByPhone(ctx, strings.TrimSpace(input.PhoneNumber)); err == nil {
		return nil, &errs.ConflictError{Field: "phone_number", Err: errs.ErrDuplicatePhone}
	} else if !errs.IsNotFoundError(err) {
		return nil, err
	}

	hash, err := d.hasher.Hash(input.Password)
	if err != nil {
		d.logger.Error("Failed to hash password", map[string]any{
			"email": input.Email,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: password hashing failed", errs.ErrInternalServer)
	}

	user, err := entity.NewUser(input.Email, input.PhoneNumber, hash, input.FirstName, input.LastName, d.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := d.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.uow.GetUserRepository(txCtx).Create(txCtx, user); err != nil {
		_ = d.uow.Rollback(txCtx)
		return nil, err
	}

	if _, err := d.walletCreator.CreateWallet(txCtx, user.ID); err != nil {
		_ = d.uow.Rollback(txCtx)
		d.logger.Error("Failed to create wallet for new user", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	if err := d.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	d.logger.Info("User registered", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// FindByEmail looks a user up by email. The caller receives a sanitized
// copy without the password hash.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// FindByPhone looks a user up by phone number, sanitized
func (d *Directory) FindByPhone(ctx context.Context, phoneNumber string) (*entity.User, error) {
	user, err := d.userRepo.GetByPhone(ctx, strings.TrimSpace(phoneNumber))
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// FindByID looks a user up by ID, sanitized
func (d *Directory) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Update applies a partial profile edit. A changed phone number that
// collides with another user fails with a conflict.
func (d *Directory) Update(ctx context.Context, id uint64, input UpdateInput) (*entity.User, error) {
	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		if phone != user.PhoneNumber {
			if other, err := d.userRepo.GetByPhone(ctx, phone); err == nil && other.ID != id {
				return nil, &errs.ConflictError{Field: "phone_number", Err: errs.ErrDuplicatePhone}
			} else if err != nil && !errs.IsNotFoundError(err) {
				return nil, err
			}
			user.PhoneNumber = phone
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	user.UpdatedAt = d.timeProvider.Now()

	if err := d.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	d.logger.Info("User profile updated", map[string]any{
		"user_id": user.ID,
	})
	return user.Sanitized(), nil
}

// Delete removes a user; the store cascades to their wallet and tokens
func (d *Directory) Delete(ctx context.Context, id uint64) error {
	if err := d.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	d.logger.Info("User deleted", map[string]any{
		"user_id": id,
	})
	return nil
}

// VerifyCredentials resolves an email/password pair to a user. Used by
// the session authority only; unknown email and bad password are
// indistinguishable to the caller.
func (d *Directory) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !d.hasher.Verify(password, user.PasswordHash) {
		return nil, errs.ErrInvalidCredentials
	}

	return user, nil
}
