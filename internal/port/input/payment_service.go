package input

import (
	"context"

	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/core/validation"
)

// PaymentService is an input port (primary port) for payment operations.
// Every operation returns exactly one variant from its closed result set;
// expected failures are variants, never errors. Primary adapters (HTTP
// handlers) type-switch on the result.
type PaymentService interface {
	// GetPayments lists all payments
	GetPayments(ctx context.Context) GetPaymentsResult

	// CreatePayment validates the input and persists a new payment.
	// On validation failure the repository is never called.
	CreatePayment(ctx context.Context, in validation.CreatePaymentInput) CreatePaymentResult

	// GetPayment retrieves a payment by ID
	GetPayment(ctx context.Context, paymentID string) GetPaymentResult

	// ApprovePayment transitions a created payment to approved
	ApprovePayment(ctx context.Context, paymentID string) ApprovePaymentResult

	// CancelPayment transitions a created payment to cancelled
	CancelPayment(ctx context.Context, paymentID string) CancelPaymentResult
}

// GetPaymentsResult is the closed result set of GetPayments.
type GetPaymentsResult interface{ isGetPaymentsResult() }

// CreatePaymentResult is the closed result set of CreatePayment.
type CreatePaymentResult interface{ isCreatePaymentResult() }

// GetPaymentResult is the closed result set of GetPayment.
type GetPaymentResult interface{ isGetPaymentResult() }

// ApprovePaymentResult is the closed result set of ApprovePayment.
type ApprovePaymentResult interface{ isApprovePaymentResult() }

// CancelPaymentResult is the closed result set of CancelPayment.
type CancelPaymentResult interface{ isCancelPaymentResult() }

// GetPaymentsSuccess carries all stored payments.
type GetPaymentsSuccess struct {
	Payments []core.Payment
}

// CreatePaymentSuccess carries the generated identifier of the new payment.
type CreatePaymentSuccess struct {
	PaymentID string
}

// CreatePaymentSchemaValidationError carries every violated field rule, in
// field declaration order.
type CreatePaymentSchemaValidationError struct {
	Errors []validation.FieldError
}

// GetPaymentSuccess carries the requested payment.
type GetPaymentSuccess struct {
	Payment core.Payment
}

// ApprovePaymentSuccess marks a completed created -> approved transition.
type ApprovePaymentSuccess struct{}

// CancelPaymentSuccess marks a completed created -> cancelled transition.
type CancelPaymentSuccess struct{}

// PaymentNotFoundError reports a lookup miss for the given payment ID.
type PaymentNotFoundError struct {
	PaymentID string
	Message   string
}

// PaymentHasBeenCancelledError rejects an approval because the payment is
// already in the terminal cancelled state.
type PaymentHasBeenCancelledError struct {
	PaymentID string
	Status    core.PaymentStatus
	Message   string
}

// PaymentAlreadyApprovedError rejects a repeated approval.
type PaymentAlreadyApprovedError struct {
	PaymentID string
	Message   string
}

// PaymentHasBeenApprovedError rejects a cancellation because the payment is
// already in the terminal approved state.
type PaymentHasBeenApprovedError struct {
	PaymentID string
	Status    core.PaymentStatus
	Message   string
}

// PaymentAlreadyCancelledError rejects a repeated cancellation.
type PaymentAlreadyCancelledError struct {
	PaymentID string
	Message   string
}

// UnexpectedError covers any fault outside the modeled failure set. The
// message is for logs only; handlers must not expose it to clients.
type UnexpectedError struct {
	Message string
}

func (GetPaymentsSuccess) isGetPaymentsResult() {}

func (CreatePaymentSuccess) isCreatePaymentResult() {}
func (CreatePaymentSchemaValidationError) isCreatePaymentResult() {}

func (GetPaymentSuccess) isGetPaymentResult() {}
func (PaymentNotFoundError) isGetPaymentResult() {}

func (ApprovePaymentSuccess) isApprovePaymentResult() {}
func (PaymentNotFoundError) isApprovePaymentResult() {}
func (PaymentHasBeenCancelledError) isApprovePaymentResult() {}
func (PaymentAlreadyApprovedError) isApprovePaymentResult() {}

func (CancelPaymentSuccess) isCancelPaymentResult() {}
func (PaymentNotFoundError) isCancelPaymentResult() {}
func (PaymentHasBeenApprovedError) isCancelPaymentResult() {}
func (PaymentAlreadyCancelledError) isCancelPaymentResult() {}

func (UnexpectedError) isGetPaymentsResult() {}
func (UnexpectedError) isCreatePaymentResult() {}
func (UnexpectedError) isGetPaymentResult() {}
func (UnexpectedError) isApprovePaymentResult() {}
func (UnexpectedError) isCancelPaymentResult() {}
