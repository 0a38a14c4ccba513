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
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		WalletID:      m.WalletID,
		Kind:          entity.TransactionKind(m.Kind),
		AmountInMinor: m.AmountInMinor,
		Description:   m.Description,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ReferenceID:   m.ReferenceID,
		ReferenceType: entity.ReferenceType(m.ReferenceType),
		CreatedAt:     m.CreatedAt,
	}
}

// Create appends a new transaction row and back-fills the generated ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := &model.Transaction{
		WalletID:      transaction.WalletID,
		Kind:          string(transaction.Kind),
		AmountInMinor: transaction.AmountInMinor,
		Description:   transaction.Description,
		BalanceBefore: transaction.BalanceBefore,
		BalanceAfter:  transaction.BalanceAfter,
		ReferenceID:   transaction.ReferenceID,
		ReferenceType: string(transaction.ReferenceType),
		CreatedAt:     transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		r.logger.Error("Database error when appending transaction", map[string]any{
			"wallet_id": transaction.WalletID,
			"error":     result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = m.ID
	return nil
}

// SetReference links a transaction to its paired transfer leg. The only
// permitted mutation of an audit row, and only inside the unit of work
// that created both legs.
func (r *TransactionRepository) SetReference(ctx context.Context, transactionID, referenceID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transactionID).
		Update("reference_id", referenceID)

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// ListByWalletID returns a newest-first page of the wallet's transactions
func (r *TransactionRepository) ListByWalletID(ctx context.Context, walletID uint64, limit, offset int) ([]*entity.Transaction, error) {
	var rows []model.Transaction
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []*entity.Transaction{}, nil
		}
		r.logger.Error("Database error when listing transactions", map[string]any{
			"wallet_id": walletID,
			"error":     result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, transactionModelToEntity(&rows[i]))
	}
	return transactions, nil
}

// CountByWalletID returns the total number of transactions on the wallet
func (r *TransactionRepository) CountByWalletID(ctx context.Context, walletID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("wallet_id = ?", walletID).
		Count(&count)

	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}
