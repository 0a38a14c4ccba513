package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository implements persistence.WalletRepository using GORM.
// The ForUpdate reads issue SELECT ... FOR UPDATE; the acquired row lock
// lives until the surrounding transaction commits or rolls back, so these
// methods only make sense on a repository bound to a unit of work.
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *WalletRepository) modelToEntity(m *model.Wallet) *entity.Wallet {
	wallet := &entity.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	wallet.SetBalance(m.Balance, r.timeProvider)
	wallet.UpdatedAt = m.UpdatedAt
	return wallet
}

// handleDatabaseError standardizes database error handling
func (r *WalletRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrWalletNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new wallet and back-fills the generated ID
func (r *WalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	m := &model.Wallet{
		UserID:    wallet.UserID,
		Balance:   wallet.Balance(),
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return r.handleDatabaseError("creating wallet", result.Error, wallet.UserID)
	}
	if result.RowsAffected == 0 || m.ID == 0 {
		return fmt.Errorf("%w: wallet insert returned no row", errs.ErrInternalServer)
	}

	wallet.ID = m.ID

	r.logger.Info("Wallet row created", map[string]any{
		"wallet_id": wallet.ID,
		"user_id":   wallet.UserID,
	})
	return nil
}

// GetByUserID retrieves the user's wallet without locking
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting wallet", result.Error, userID)
	}
	return r.modelToEntity(&m), nil
}

// GetByUserIDForUpdate retrieves the user's wallet under an exclusive row lock
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking wallet", result.Error, userID)
	}
	return r.modelToEntity(&m), nil
}

// GetByIDForUpdate retrieves a wallet by its own ID under an exclusive row lock
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, walletID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, walletID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		r.logger.Error("Database error when locking wallet by id", map[string]any{
			"wallet_id": walletID,
			"error":     result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.modelToEntity(&m), nil
}

// UpdateBalance writes the wallet's new balance. The caller must hold the
// row lock from one of the ForUpdate reads.
func (r *WalletRepository) UpdateBalance(ctx context.Context, wallet *entity.Wallet) error {
	result := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"balance":    wallet.Balance(),
			"updated_at": wallet.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating wallet balance", result.Error, wallet.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrWalletNotFound
	}
	return nil
}
