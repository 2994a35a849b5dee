package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/core/validation"
	"github.com/cashflow/payments-api/internal/port/input"
	"github.com/cashflow/payments-api/internal/port/output"
)

// PaymentServiceImpl implements the PaymentService input port. It is the
// single place where repository faults are triaged into the closed result
// sets; nothing below the HTTP boundary inspects error strings.
type PaymentServiceImpl struct {
	paymentRepo output.PaymentRepository
	events      output.PaymentEventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo output.PaymentRepository,
	events output.PaymentEventPublisher,
	logger *zap.Logger,
) input.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		events:      events,
		logger:      logger,
	}
}

// GetPayments lists all payments
func (s *PaymentServiceImpl) GetPayments(ctx context.Context) input.GetPaymentsResult {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		s.logger.Error("listing payments failed", zap.Error(err))
		return input.UnexpectedError{Message: "failed to list payments"}
	}
	return input.GetPaymentsSuccess{Payments: payments}
}

// CreatePayment validates the input and persists a new payment. Validation
// failure never reaches storage.
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, in validation.CreatePaymentInput) input.CreatePaymentResult {
	if errs := validation.ValidateCreatePayment(in); errs != nil {
		return input.CreatePaymentSchemaValidationError{Errors: errs}
	}

	payment := &core.Payment{
		PayeeID:       in.PayeeID,
		PayerID:       in.PayerID,
		PaymentSystem: in.PaymentSystem,
		PaymentMethod: in.PaymentMethod,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Comment:       in.Comment,
		Status:        core.PaymentStatusCreated,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Error("creating payment failed", zap.Error(err))
		return input.UnexpectedError{Message: "failed to create payment"}
	}

	s.publish(output.PaymentEventCreated, payment.ID)

	return input.CreatePaymentSuccess{PaymentID: payment.ID.String()}
}

// GetPayment retrieves a payment by ID
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, paymentID string) input.GetPaymentResult {
	payment, res := s.findPayment(ctx, paymentID)
	if res != nil {
		return res
	}
	return input.GetPaymentSuccess{Payment: *payment}
}

// ApprovePayment transitions a created payment to approved. The cancelled
// guard runs before the already-approved guard, so a cancelled payment is
// always reported as a terminal-state conflict, never as already approved.
func (s *PaymentServiceImpl) ApprovePayment(ctx context.Context, paymentID string) input.ApprovePaymentResult {
	payment, res := s.findPayment(ctx, paymentID)
	if res != nil {
		return res
	}

	if payment.Status.Is(core.PaymentStatusCancelled) {
		return hasBeenCancelled(paymentID, payment.Status)
	}
	if payment.Status.Is(core.PaymentStatusApproved) {
		return alreadyApproved(paymentID)
	}

	updated, err := s.paymentRepo.UpdateStatus(ctx, payment.ID, core.PaymentStatusCreated, core.PaymentStatusApproved)
	if err != nil {
		s.logger.Error("approving payment failed", zap.String("payment_id", paymentID), zap.Error(err))
		return input.UnexpectedError{Message: "failed to approve payment"}
	}
	if !updated {
		// Lost the race: a concurrent transition moved the payment out of
		// created between our read and the conditional write. Re-read and
		// report the conflict against the status that won.
		return s.approveConflict(ctx, paymentID)
	}

	s.publish(output.PaymentEventApproved, payment.ID)

	return input.ApprovePaymentSuccess{}
}

// CancelPayment transitions a created payment to cancelled. Mirror of
// ApprovePayment: the approved guard runs before the already-cancelled guard.
func (s *PaymentServiceImpl) CancelPayment(ctx context.Context, paymentID string) input.CancelPaymentResult {
	payment, res := s.findPayment(ctx, paymentID)
	if res != nil {
		return res
	}

	if payment.Status.Is(core.PaymentStatusApproved) {
		return hasBeenApproved(paymentID, payment.Status)
	}
	if payment.Status.Is(core.PaymentStatusCancelled) {
		return alreadyCancelled(paymentID)
	}

	updated, err := s.paymentRepo.UpdateStatus(ctx, payment.ID, core.PaymentStatusCreated, core.PaymentStatusCancelled)
	if err != nil {
		s.logger.Error("cancelling payment failed", zap.String("payment_id", paymentID), zap.Error(err))
		return input.UnexpectedError{Message: "failed to cancel payment"}
	}
	if !updated {
		return s.cancelConflict(ctx, paymentID)
	}

	s.publish(output.PaymentEventCancelled, payment.ID)

	return input.CancelPaymentSuccess{}
}

// lookupFailure is the variant subset a payment lookup can produce.
// PaymentNotFoundError and UnexpectedError are members of every result set
// named here, so either can be returned as-is by the caller.
type lookupFailure interface {
	input.GetPaymentResult
	input.ApprovePaymentResult
	input.CancelPaymentResult
}

// findPayment resolves a payment ID string to the stored entity. The second
// return value is non-nil when the caller should return it unchanged.
func (s *PaymentServiceImpl) findPayment(ctx context.Context, paymentID string) (*core.Payment, lookupFailure) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		// A malformed ID can never match a record
		return nil, notFound(paymentID)
	}

	payment, found, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("finding payment failed", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, input.UnexpectedError{Message: "failed to find payment"}
	}
	if !found {
		return nil, notFound(paymentID)
	}
	return payment, nil
}

// approveConflict re-derives the approve-side conflict variant after a failed
// conditional update.
func (s *PaymentServiceImpl) approveConflict(ctx context.Context, paymentID string) input.ApprovePaymentResult {
	payment, res := s.findPayment(ctx, paymentID)
	if res != nil {
		return res
	}
	if payment.Status.Is(core.PaymentStatusCancelled) {
		return hasBeenCancelled(paymentID, payment.Status)
	}
	if payment.Status.Is(core.PaymentStatusApproved) {
		return alreadyApproved(paymentID)
	}
	s.logger.Error("approve conditional update matched no row", zap.String("payment_id", paymentID))
	return input.UnexpectedError{Message: "failed to approve payment"}
}

// cancelConflict re-derives the cancel-side conflict variant after a failed
// conditional update.
func (s *PaymentServiceImpl) cancelConflict(ctx context.Context, paymentID string) input.CancelPaymentResult {
	payment, res := s.findPayment(ctx, paymentID)
	if res != nil {
		return res
	}
	if payment.Status.Is(core.PaymentStatusApproved) {
		return hasBeenApproved(paymentID, payment.Status)
	}
	if payment.Status.Is(core.PaymentStatusCancelled) {
		return alreadyCancelled(paymentID)
	}
	s.logger.Error("cancel conditional update matched no row", zap.String("payment_id", paymentID))
	return input.UnexpectedError{Message: "failed to cancel payment"}
}

// publish sends a lifecycle event; failures are logged and swallowed so the
// originating operation still succeeds.
func (s *PaymentServiceImpl) publish(kind output.PaymentEventKind, paymentID uuid.UUID) {
	event := output.PaymentEvent{
		Kind:      kind,
		PaymentID: paymentID,
		Timestamp: time.Now(),
	}
	if err := s.events.PublishPaymentEvent(event); err != nil {
		s.logger.Warn("publishing payment event failed",
			zap.String("event", string(kind)),
			zap.String("payment_id", paymentID.String()),
			zap.Error(err))
	}
}

func notFound(paymentID string) input.PaymentNotFoundError {
	return input.PaymentNotFoundError{
		PaymentID: paymentID,
		Message:   fmt.Sprintf("Could not find payment with id: %s", paymentID),
	}
}

func hasBeenCancelled(paymentID string, status core.PaymentStatus) input.PaymentHasBeenCancelledError {
	return input.PaymentHasBeenCancelledError{
		PaymentID: paymentID,
		Status:    status,
		Message:   fmt.Sprintf("Cannot approve payment (id: '%s') because it has status : '%s'", paymentID, status),
	}
}

func alreadyApproved(paymentID string) input.PaymentAlreadyApprovedError {
	return input.PaymentAlreadyApprovedError{
		PaymentID: paymentID,
		Message:   fmt.Sprintf("Payment (id: '%s') was already approved", paymentID),
	}
}

func hasBeenApproved(paymentID string, status core.PaymentStatus) input.PaymentHasBeenApprovedError {
	return input.PaymentHasBeenApprovedError{
		PaymentID: paymentID,
		Status:    status,
		Message:   fmt.Sprintf("Cannot cancel payment (id: '%s') because it has status : '%s'", paymentID, status),
	}
}

func alreadyCancelled(paymentID string) input.PaymentAlreadyCancelledError {
	return input.PaymentAlreadyCancelledError{
		PaymentID: paymentID,
		Message:   fmt.Sprintf("Payment (id: '%s') was already cancelled", paymentID),
	}
}
