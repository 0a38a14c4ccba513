package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// WalletRepository defines essential methods to interact with wallet data.
// The ForUpdate variants acquire an exclusive row lock that is held until
// the surrounding unit of work commits or rolls back; they are only
// meaningful on a repository bound to an open unit of work.
type WalletRepository interface {
	// Create persists a new wallet and fills in its generated ID
	//
	// Possible errors:
	// - ErrInternalServer: If the insert does not produce a row
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, wallet *entity.Wallet) error

	// GetByUserID retrieves the wallet owned by the given user without locking
	//
	// Possible errors:
	// - ErrWalletNotFound: If no wallet exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// GetByUserIDForUpdate retrieves the user's wallet under an exclusive row lock
	//
	// Possible errors:
	// - ErrWalletNotFound: If no wallet exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// GetByIDForUpdate retrieves a wallet by its own ID under an exclusive row lock.
	// Multi-wallet operations lock rows in ascending wallet ID order through
	// this method to stay deadlock free.
	//
	// Possible errors:
	// - ErrWalletNotFound: If the wallet doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, walletID uint64) (*entity.Wallet, error)

	// UpdateBalance writes the wallet's new balance. The caller must hold
	// the row lock acquired by one of the ForUpdate reads.
	//
	// Possible errors:
	// - ErrWalletNotFound: If the wallet doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateBalance(ctx context.Context, wallet *entity.Wallet) error
}
