package ports

import (
	"context"
	"time"

	"turbo/contexts/identity-access/identity-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new accounts.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher hides the credential hashing scheme from the application.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenIssuer mints a signed token for an authenticated subject. Satisfied by
// the request-gate token codec; identity never verifies tokens itself.
type TokenIssuer interface {
	Issue(subject string, roles []string, ttl time.Duration) (string, error)
}

// Repository is the persistence boundary for account state.
type Repository interface {
	// CreateUser persists a new account; a username or email collision
	// surfaces as ErrUserAlreadyExists.
	CreateUser(ctx context.Context, user entities.User) error
	GetUserByUsername(ctx context.Context, username string) (entities.User, bool, error)
}
