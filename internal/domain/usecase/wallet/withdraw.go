package wallet

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// Withdraw debits the user's wallet. The sufficiency check happens under
// the row lock, never before it; an application-level pre-check would be
// stale the moment a concurrent writer committed.
func (e *Engine) Withdraw(ctx context.Context, userID uint64, amount, description string) (*entity.Transaction, error) {
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

	txn, err := e.withdrawLocked(txCtx, userID, amountInMinor, amount, description)
	if err != nil {
		_ = e.uow.Rollback(txCtx)
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	e.logger.Info("Wallet withdrawal completed", map[string]any{
		"user_id":     userID,
		"wallet_id":   txn.WalletID,
		"amount":      txn.Amount(),
		"new_balance": entity.FormatAmount(txn.BalanceAfter),
	})
	return txn, nil
}

func (e *Engine) withdrawLocked(txCtx context.Context, userID uint64, amountInMinor int64, amount, description string) (*entity.Transaction, error) {
	wallets := e.uow.GetWalletRepository(txCtx)

	wallet, err := wallets.GetByUserIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	balanceBefore := wallet.Balance()
	if err := wallet.Debit(amountInMinor, e.timeProvider); err != nil {
		e.logger.Warn("Withdrawal rejected, insufficient balance", map[string]any{
			"user_id":         userID,
			"wallet_id":       wallet.ID,
			"amount":          amount,
			"current_balance": wallet.FormattedBalance(),
		})
		return nil, errs.NewInsufficientBalanceError(wallet.ID, amount, wallet.FormattedBalance())
	}
	if err := wallets.UpdateBalance(txCtx, wallet); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(
		wallet.ID,
		entity.KindDebit,
		amountInMinor,
		description,
		balanceBefore,
		entity.ReferenceWithdrawal,
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
