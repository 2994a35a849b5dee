package output

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEventKind identifies a lifecycle event on a payment.
type PaymentEventKind string

const (
	PaymentEventCreated   PaymentEventKind = "payment.created"
	PaymentEventApproved  PaymentEventKind = "payment.approved"
	PaymentEventCancelled PaymentEventKind = "payment.cancelled"
)

// PaymentEvent is published after each successful lifecycle operation.
type PaymentEvent struct {
	Kind      PaymentEventKind `json:"kind"`
	PaymentID uuid.UUID        `json:"payment_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// PaymentEventPublisher is an output port (secondary port) for lifecycle
// event publishing. Publishing is best-effort: the service logs failures and
// never fails the originating operation.
type PaymentEventPublisher interface {
	// PublishPaymentEvent publishes one lifecycle event
	PublishPaymentEvent(event PaymentEvent) error
	// Close closes the messaging connection
	Close() error
}
