package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by normalized email
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByPhone retrieves a user by phone number
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this phone number
	// - ErrDatabaseConnection: If database connection fails
	GetByPhone(ctx context.Context, phoneNumber string) (*entity.User, error)

	// Create persists a new user and fills in its generated ID
	//
	// Possible errors:
	// - ErrDuplicateEmail / ErrDuplicatePhone: If a unique column collides
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update persists profile changes for an existing user
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDuplicateEmail / ErrDuplicatePhone: If a changed unique column collides
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user. Wallet and auth token rows cascade at the
	// store level.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Delete(ctx context.Context, id uint64) error
}
