package http

import (
	"time"

	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/core/validation"
)

// Stable machine-readable error codes exposed to API clients
const (
	ErrCodeValidation       = "ERR_VALIDATION"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeCannotApprove    = "ERR_CANNOT_APPROVE"
	ErrCodeAlreadyApproved  = "ERR_ALREADY_APPROVED"
	ErrCodeCannotCancel     = "ERR_CANNOT_CANCEL"
	ErrCodeAlreadyCancelled = "ERR_ALREADY_CANCELLED"
	ErrCodeUnauthorized     = "ERR_UNAUTHORIZED"
	ErrCodeInternal         = "ERR_INTERNAL"
)

const (
	msgValidation       = "Validation failed"
	msgNotFound         = "The resource you have requested cannot be found"
	msgCannotApprove    = "Cannot approve a payment that has already been cancelled"
	msgAlreadyApproved  = "This payment was already approved"
	msgCannotCancel     = "Cannot cancel a payment that has already been approved"
	msgAlreadyCancelled = "This payment was already cancelled"
	msgUnauthorized     = "No auth token provided"
	msgInternal         = "Something went wrong"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []validation.FieldError `json:"details,omitempty"`
}

// PaymentResponse is the HTTP representation of a payment
type PaymentResponse struct {
	ID            string  `json:"id"`
	PayeeID       string  `json:"payeeId"`
	PayerID       string  `json:"payerId"`
	PaymentSystem string  `json:"paymentSystem"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Comment       string  `json:"comment"`
	Status        string  `json:"status"`
	Created       string  `json:"created"`
	Updated       string  `json:"updated"`
}

// CreatePaymentResponse carries the identifier of a newly created payment
type CreatePaymentResponse struct {
	PaymentID string `json:"paymentId"`
}

// AuthenticateResponse carries an issued token and its lifetime in seconds
type AuthenticateResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func toPaymentResponse(p core.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		PayeeID:       p.PayeeID,
		PayerID:       p.PayerID,
		PaymentSystem: p.PaymentSystem,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Comment:       p.Comment,
		Status:        string(p.Status),
		Created:       p.CreatedAt.Format(time.RFC3339),
		Updated:       p.UpdatedAt.Format(time.RFC3339),
	}
}
