package wallet

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// TransferResult carries the two cross-referenced legs of a completed transfer
type TransferResult struct {
	Debit  *entity.Transaction
	Credit *entity.Transaction
}

// Transfer moves money from the sender's wallet to the wallet of the user
// holding recipientEmail. Both wallet rows are locked inside one unit of
// work, always in ascending wallet ID order; two transfers running in
// opposite directions therefore contend on the same first lock and cannot
// deadlock. The debit and credit audit rows reference each other and
// commit atomically with both balance writes.
func (e *Engine) Transfer(ctx context.Context, senderID uint64, recipientEmail, amount, description string) (*TransferResult, error) {
	if senderID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	amountInMinor, err := entity.ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	recipient, err := e.userRepo.GetByEmail(ctx, recipientEmail)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, errs.ErrSelfTransfer
	}

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := e.transferLocked(txCtx, senderID, recipient.ID, amountInMinor, amount, description)
	if err != nil {
		_ = e.uow.Rollback(txCtx)
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	e.logger.Info("Transfer completed", map[string]any{
		"sender_id":    senderID,
		"recipient_id": recipient.ID,
		"amount":       result.Debit.Amount(),
		"debit_txn":    result.Debit.ID,
		"credit_txn":   result.Credit.ID,
	})
	return result, nil
}

func (e *Engine) transferLocked(txCtx context.Context, senderID, recipientID uint64, amountInMinor int64, amount, description string) (*TransferResult, error) {
	wallets := e.uow.GetWalletRepository(txCtx)

	// Resolve wallet IDs first; the lock order below depends on them.
	senderWallet, err := wallets.GetByUserID(txCtx, senderID)
	if err != nil {
		return nil, err
	}
	recipientWallet, err := wallets.GetByUserID(txCtx, recipientID)
	if err != nil {
		return nil, err
	}

	// Lock both rows in ascending wallet ID order, then trust only the
	// locked reads.
	firstID, secondID := senderWallet.ID, recipientWallet.ID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}
	first, err := wallets.GetByIDForUpdate(txCtx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := wallets.GetByIDForUpdate(txCtx, secondID)
	if err != nil {
		return nil, err
	}

	sender, receiver := first, second
	if sender.ID != senderWallet.ID {
		sender, receiver = second, first
	}

	senderBefore := sender.Balance()
	receiverBefore := receiver.Balance()

	if err := sender.Debit(amountInMinor, e.timeProvider); err != nil {
		e.logger.Warn("Transfer rejected, insufficient balance", map[string]any{
			"sender_id":       senderID,
			"wallet_id":       sender.ID,
			"amount":          amount,
			"current_balance": sender.FormattedBalance(),
		})
		return nil, errs.NewInsufficientBalanceError(sender.ID, amount, sender.FormattedBalance())
	}
	receiver.Credit(amountInMinor, e.timeProvider)

	if err := wallets.UpdateBalance(txCtx, sender); err != nil {
		return nil, err
	}
	if err := wallets.UpdateBalance(txCtx, receiver); err != nil {
		return nil, err
	}

	transactions := e.uow.GetTransactionRepository(txCtx)

	debitTxn, err := entity.NewTransaction(
		sender.ID,
		entity.KindDebit,
		amountInMinor,
		description,
		senderBefore,
		entity.ReferenceTransfer,
		e.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	if err := transactions.Create(txCtx, debitTxn); err != nil {
		return nil, err
	}

	creditTxn, err := entity.NewTransaction(
		receiver.ID,
		entity.KindCredit,
		amountInMinor,
		description,
		receiverBefore,
		entity.ReferenceTransfer,
		e.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	creditTxn.SetReference(debitTxn.ID)
	if err := transactions.Create(txCtx, creditTxn); err != nil {
		return nil, err
	}

	// Back-fill the pairing link on the debit leg now that the credit
	// leg has an ID.
	if err := transactions.SetReference(txCtx, debitTxn.ID, creditTxn.ID); err != nil {
		return nil, err
	}
	debitTxn.SetReference(creditTxn.ID)

	return &TransferResult{Debit: debitTxn, Credit: creditTxn}, nil
}
