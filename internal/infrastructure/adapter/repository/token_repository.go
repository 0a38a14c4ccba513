package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TokenRepository implements persistence.AuthTokenRepository using GORM
type TokenRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTokenRepository creates a new TokenRepository instance
func NewTokenRepository(db *gorm.DB, logger coreport.Logger) *TokenRepository {
	return &TokenRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func tokenModelToEntity(m *model.AuthToken) *entity.AuthToken {
	return &entity.AuthToken{
		ID:         m.ID,
		UserID:     m.UserID,
		Token:      m.Token,
		ExpiresAt:  m.ExpiresAt,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		LastUsedAt: m.LastUsedAt,
	}
}

// Create persists a new token and back-fills the generated ID
func (r *TokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	m := &model.AuthToken{
		UserID:     token.UserID,
		Token:      token.Token,
		ExpiresAt:  token.ExpiresAt,
		IsActive:   token.IsActive,
		CreatedAt:  token.CreatedAt,
		LastUsedAt: token.LastUsedAt,
	}

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return &errs.ConflictError{Field: "token", Err: errs.ErrDuplicateToken}
		}
		r.logger.Error("Database error when creating token", map[string]any{
			"user_id": token.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	token.ID = m.ID
	return nil
}

// GetByToken retrieves a token row by its opaque token string
func (r *TokenRepository) GetByToken(ctx context.Context, raw string) (*entity.AuthToken, error) {
	var m model.AuthToken
	result := r.db.WithContext(ctx).Where("token = ?", raw).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return tokenModelToEntity(&m), nil
}

// Update persists activity flag and last-used changes
func (r *TokenRepository) Update(ctx context.Context, token *entity.AuthToken) error {
	result := r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]interface{}{
			"is_active":    token.IsActive,
			"last_used_at": token.LastUsedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// DeactivateAllForUser soft-invalidates every token the user holds
func (r *TokenRepository) DeactivateAllForUser(ctx context.Context, userID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// DeleteExpired purges token rows whose expiry is before the cutoff
func (r *TokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&model.AuthToken{})

	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return result.RowsAffected, nil
}
