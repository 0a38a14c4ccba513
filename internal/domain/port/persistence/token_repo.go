package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// AuthTokenRepository defines essential methods to interact with auth tokens
type AuthTokenRepository interface {
	// Create persists a new token and fills in its generated ID
	//
	// Possible errors:
	// - ErrDuplicateToken: If the token string collides with an existing row
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, token *entity.AuthToken) error

	// GetByToken retrieves a token row by its opaque token string
	//
	// Possible errors:
	// - ErrUnauthorized: If no such token exists
	// - ErrDatabaseConnection: If database connection fails
	GetByToken(ctx context.Context, token string) (*entity.AuthToken, error)

	// Update persists activity flag and last-used changes
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, token *entity.AuthToken) error

	// DeactivateAllForUser soft-invalidates every token the user holds
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	DeactivateAllForUser(ctx context.Context, userID uint64) error

	// DeleteExpired purges rows whose expiry is before the cutoff.
	// Maintenance only, never called on the request path.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
