package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// TransactionRepository appends and reads the immutable audit log.
// Rows are never updated or deleted once written, with one exception:
// SetReference back-fills the pairing link on a transfer's first leg
// inside the same unit of work that created both legs.
type TransactionRepository interface {
	// Create appends a new transaction row and fills in its generated ID
	//
	// Possible errors:
	// - ErrWalletNotFound: If the referenced wallet does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// SetReference links a transaction to its paired transfer leg
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the transaction doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	SetReference(ctx context.Context, transactionID, referenceID uint64) error

	// ListByWalletID returns a newest-first page of the wallet's transactions
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByWalletID(ctx context.Context, walletID uint64, limit, offset int) ([]*entity.Transaction, error)

	// CountByWalletID returns the total number of transactions for pagination
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	CountByWalletID(ctx context.Context, walletID uint64) (int64, error)
}
