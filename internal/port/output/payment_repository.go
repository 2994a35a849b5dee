package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashflow/payments-api/internal/core"
)

// PaymentRepository is an output port (secondary port) for payment data access.
// Secondary adapters (database implementations) implement this. Absence is
// signalled with the found flag, never with an error; errors are reserved for
// storage faults.
type PaymentRepository interface {
	// FindByID retrieves a payment by its ID. found is false when no record
	// matches.
	FindByID(ctx context.Context, id uuid.UUID) (payment *core.Payment, found bool, err error)

	// List returns all payments. The slice is empty, never nil, when the
	// store holds none. Order is not guaranteed.
	List(ctx context.Context) ([]core.Payment, error)

	// Create persists a new payment, filling ID, CreatedAt and UpdatedAt on
	// the passed entity. The returned ID is immediately usable with FindByID.
	Create(ctx context.Context, payment *core.Payment) error

	// UpdateStatus atomically sets the status to `to` only if the current
	// stored status equals `from`, refreshing UpdatedAt. updated is false
	// when no row matched, either because the payment does not exist or a
	// concurrent transition won the race.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to core.PaymentStatus) (updated bool, err error)
}
