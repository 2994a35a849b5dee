package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Normalized returns the status trimmed and lower-cased for comparison.
// Stored values may carry legacy casing or padding; writes always use the
// canonical constants above, reads tolerate the rest.
func (s PaymentStatus) Normalized() PaymentStatus {
	return PaymentStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Is reports whether the status matches the canonical status after normalization
func (s PaymentStatus) Is(canonical PaymentStatus) bool {
	return s.Normalized() == canonical
}

// Payment represents a payment domain entity
type Payment struct {
	ID            uuid.UUID
	PayeeID       string
	PayerID       string
	PaymentSystem string
	PaymentMethod string
	Amount        float64
	Currency      string
	Comment       string
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminal checks if the payment is in a terminal state
func (p *Payment) IsTerminal() bool {
	return p.Status.Is(PaymentStatusApproved) || p.Status.Is(PaymentStatusCancelled)
}
