package wallet

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
)

// Engine is the ledger core. Every balance mutation follows the same
// protocol inside one unit of work: lock the wallet row(s), read the
// balance, validate, write the new balance, append the audit row(s),
// commit. The store's row locks are the only coordination mechanism, so
// correctness holds across multiple stateless instances.
type Engine struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewEngine creates a new wallet engine
func NewEngine(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		uow:          uow,
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateWallet inserts a zero-balance wallet for the user. When ctx is a
// transactional context from an open unit of work, the insert joins that
// atomic scope; registration relies on this so a user row never commits
// without its wallet.
func (e *Engine) CreateWallet(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	wallet, err := entity.NewWallet(userID, e.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := e.uow.GetWalletRepository(ctx).Create(ctx, wallet); err != nil {
		return nil, err
	}
	if wallet.ID == 0 {
		return nil, fmt.Errorf("%w: wallet insert returned no row", errs.ErrInternalServer)
	}

	e.logger.Info("Wallet created", map[string]any{
		"wallet_id": wallet.ID,
		"user_id":   userID,
	})
	return wallet, nil
}

// GetBalance reads the current balance of the user's wallet
func (e *Engine) GetBalance(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return e.uow.GetWalletRepository(ctx).GetByUserID(ctx, userID)
}
