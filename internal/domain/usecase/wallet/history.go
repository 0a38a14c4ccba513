package wallet

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// History page bounds
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// GetTransactionHistory returns a newest-first page of the user's
// transactions. The limit is clamped to [1, MaxHistoryLimit].
func (e *Engine) GetTransactionHistory(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	wallet, err := e.uow.GetWalletRepository(ctx).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	return e.uow.GetTransactionRepository(ctx).ListByWalletID(ctx, wallet.ID, limit, offset)
}

// GetTransactionCount returns the total number of transactions on the
// user's wallet for pagination metadata
func (e *Engine) GetTransactionCount(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, errs.ErrInvalidUserID
	}

	wallet, err := e.uow.GetWalletRepository(ctx).GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	return e.uow.GetTransactionRepository(ctx).CountByWalletID(ctx, wallet.ID)
}
