package wallet

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// Fund credits the user's wallet. The wallet row is locked for the
// duration of the unit of work, so the balance snapshot recorded on the
// audit row is authoritative.
func (e *Engine) Fund(ctx context.Context, userID uint64, amount, description string) (*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	amountInMinor, err := entity.ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := e.fundLocked(txCtx, userID, amountInMinor, description)
	if err != nil {
		_ = e.uow.Rollback(txCtx)
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	e.logger.Info("Wallet funded", map[string]any{
		"user_id":     userID,
		"wallet_id":   txn.WalletID,
		"amount":      txn.Amount(),
		"new_balance": entity.FormatAmount(txn.BalanceAfter),
	})
	return txn, nil
}

func (e *Engine) fundLocked(txCtx context.Context, userID uint64, amountInMinor int64, description string) (*entity.Transaction, error) {
	wallets := e.uow.GetWalletRepository(txCtx)

	wallet, err := wallets.GetByUserIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	balanceBefore := wallet.Balance()
	wallet.Credit(amountInMinor, e.timeProvider)
	if err := wallets.UpdateBalance(txCtx, wallet); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(
		wallet.ID,
		entity.KindCredit,
		amountInMinor,
		description,
		balanceBefore,
		entity.ReferenceFunding,
		e.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	if err := e.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}
