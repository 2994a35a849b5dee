package output

import (
	"context"

	"github.com/cashflow/payments-api/internal/core"
)

// UserRepository is an output port (secondary port) for user data access.
type UserRepository interface {
	// FindByUsername retrieves a user by username. found is false when no
	// record matches.
	FindByUsername(ctx context.Context, username string) (user *core.User, found bool, err error)

	// Create persists a new user, filling ID on the passed entity
	Create(ctx context.Context, user *core.User) error
}
