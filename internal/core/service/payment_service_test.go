package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/core/service"
	"github.com/cashflow/payments-api/internal/core/validation"
	"github.com/cashflow/payments-api/internal/port/input"
	"github.com/cashflow/payments-api/internal/port/output"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*core.Payment, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*core.Payment), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]core.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *core.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to core.PaymentStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of PaymentEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPaymentEvent(event output.PaymentEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func quietPublisher() *MockEventPublisher {
	events := new(MockEventPublisher)
	events.On("PublishPaymentEvent", mock.Anything).Return(nil).Maybe()
	return events
}

func testPayment(status core.PaymentStatus) *core.Payment {
	now := time.Now()
	return &core.Payment{
		ID:            uuid.New(),
		PayeeID:       "3a0fa979-82ae-4352-a1ad-4f345dbcbafd",
		PayerID:       "b0286d34-d1a3-465c-8334-9e0b0a7b465b",
		PaymentSystem: "ingenico",
		PaymentMethod: "mastercard",
		Amount:        10.25,
		Currency:      "USD",
		Comment:       "test",
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func createInput() validation.CreatePaymentInput {
	return validation.CreatePaymentInput{
		PayeeID:       "3a0fa979-82ae-4352-a1ad-4f345dbcbafd",
		PayerID:       "b0286d34-d1a3-465c-8334-9e0b0a7b465b",
		PaymentSystem: "ingenico",
		PaymentMethod: "mastercard",
		Amount:        10.25,
		Currency:      "USD",
		Comment:       "test",
	}
}

func TestPaymentService_GetPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all payments", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		stored := []core.Payment{*testPayment(core.PaymentStatusCreated)}
		mockRepo.On("List", ctx).Return(stored, nil)

		res := svc.GetPayments(ctx)

		success, ok := res.(input.GetPaymentsSuccess)
		require.True(t, ok)
		assert.Len(t, success.Payments, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository fault becomes UnexpectedError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		mockRepo.On("List", ctx).Return(nil, assert.AnError)

		res := svc.GetPayments(ctx)

		assert.IsType(t, input.UnexpectedError{}, res)
	})
}

func TestPaymentService_CreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input creates a payment", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		generated := uuid.New()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*core.Payment")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*core.Payment)
				p.ID = generated
				p.CreatedAt = time.Now()
				p.UpdatedAt = p.CreatedAt
			}).
			Return(nil)

		events := new(MockEventPublisher)
		events.On("PublishPaymentEvent", mock.MatchedBy(func(e output.PaymentEvent) bool {
			return e.Kind == output.PaymentEventCreated && e.PaymentID == generated
		})).Return(nil)

		svc := service.NewPaymentService(mockRepo, events, zap.NewNop())

		res := svc.CreatePayment(ctx, createInput())

		success, ok := res.(input.CreatePaymentSuccess)
		require.True(t, ok)
		assert.Equal(t, generated.String(), success.PaymentID)
		mockRepo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("new payments start in created status", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *core.Payment) bool {
			return p.Status == core.PaymentStatusCreated
		})).Return(nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CreatePayment(ctx, createInput())

		assert.IsType(t, input.CreatePaymentSuccess{}, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("validation failure never touches storage", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		in := createInput()
		in.PayeeID = "1234"
		in.Currency = ""

		res := svc.CreatePayment(ctx, in)

		failure, ok := res.(input.CreatePaymentSchemaValidationError)
		require.True(t, ok)
		assert.Len(t, failure.Errors, 2)
		assert.Equal(t, "payeeId", failure.Errors[0].Path)
		assert.Equal(t, "currency", failure.Errors[1].Path)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage fault becomes UnexpectedError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CreatePayment(ctx, createInput())

		assert.IsType(t, input.UnexpectedError{}, res)
	})

	t.Run("publish failure does not fail the operation", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		events := new(MockEventPublisher)
		events.On("PublishPaymentEvent", mock.Anything).Return(assert.AnError)

		svc := service.NewPaymentService(mockRepo, events, zap.NewNop())

		res := svc.CreatePayment(ctx, createInput())

		assert.IsType(t, input.CreatePaymentSuccess{}, res)
	})
}

func TestPaymentService_GetPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the payment", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCreated)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.GetPayment(ctx, payment.ID.String())

		success, ok := res.(input.GetPaymentSuccess)
		require.True(t, ok)
		assert.Equal(t, payment.ID, success.Payment.ID)
		assert.Equal(t, "ingenico", success.Payment.PaymentSystem)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id on empty store yields PaymentNotFoundError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockRepo.On("FindByID", ctx, uuid.Nil).Return(nil, false, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.GetPayment(ctx, "00000000-0000-0000-0000-000000000000")

		failure, ok := res.(input.PaymentNotFoundError)
		require.True(t, ok)
		assert.Equal(t, "00000000-0000-0000-0000-000000000000", failure.PaymentID)
		assert.Contains(t, failure.Message, "Could not find payment")
	})

	t.Run("malformed id yields PaymentNotFoundError without a lookup", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.GetPayment(ctx, "not-a-uuid")

		assert.IsType(t, input.PaymentNotFoundError{}, res)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("repository fault becomes UnexpectedError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		id := uuid.New()
		mockRepo.On("FindByID", ctx, id).Return(nil, false, assert.AnError)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.GetPayment(ctx, id.String())

		assert.IsType(t, input.UnexpectedError{}, res)
	})
}

func TestPaymentService_ApprovePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("approves a created payment", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCreated)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)
		mockRepo.On("UpdateStatus", ctx, payment.ID, core.PaymentStatusCreated, core.PaymentStatusApproved).
			Return(true, nil)

		events := new(MockEventPublisher)
		events.On("PublishPaymentEvent", mock.MatchedBy(func(e output.PaymentEvent) bool {
			return e.Kind == output.PaymentEventApproved
		})).Return(nil)

		svc := service.NewPaymentService(mockRepo, events, zap.NewNop())

		res := svc.ApprovePayment(ctx, payment.ID.String())

		assert.IsType(t, input.ApprovePaymentSuccess{}, res)
		mockRepo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("unknown payment yields PaymentNotFoundError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		id := uuid.New()
		mockRepo.On("FindByID", ctx, id).Return(nil, false, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, id.String())

		assert.IsType(t, input.PaymentNotFoundError{}, res)
	})

	t.Run("cancelled payment yields PaymentHasBeenCancelledError, never already-approved", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCancelled)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, payment.ID.String())

		failure, ok := res.(input.PaymentHasBeenCancelledError)
		require.True(t, ok)
		assert.Equal(t, core.PaymentStatusCancelled, failure.Status)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already approved payment is rejected, not silently accepted", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusApproved)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, payment.ID.String())

		failure, ok := res.(input.PaymentAlreadyApprovedError)
		require.True(t, ok)
		assert.Contains(t, failure.Message, "already approved")
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("legacy-cased stored status still triggers the cancelled guard", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatus(" CANCELLED "))
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, payment.ID.String())

		failure, ok := res.(input.PaymentHasBeenCancelledError)
		require.True(t, ok)
		// The raw stored value is reported, not a normalized copy
		assert.Equal(t, core.PaymentStatus(" CANCELLED "), failure.Status)
	})

	t.Run("losing the transition race reports the winning status", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		created := testPayment(core.PaymentStatusCreated)
		cancelled := *created
		cancelled.Status = core.PaymentStatusCancelled

		mockRepo.On("FindByID", ctx, created.ID).Return(created, true, nil).Once()
		mockRepo.On("UpdateStatus", ctx, created.ID, core.PaymentStatusCreated, core.PaymentStatusApproved).
			Return(false, nil)
		mockRepo.On("FindByID", ctx, created.ID).Return(&cancelled, true, nil).Once()

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, created.ID.String())

		assert.IsType(t, input.PaymentHasBeenCancelledError{}, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository fault becomes UnexpectedError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCreated)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)
		mockRepo.On("UpdateStatus", ctx, payment.ID, core.PaymentStatusCreated, core.PaymentStatusApproved).
			Return(false, assert.AnError)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.ApprovePayment(ctx, payment.ID.String())

		assert.IsType(t, input.UnexpectedError{}, res)
	})
}

func TestPaymentService_CancelPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels a created payment", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCreated)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)
		mockRepo.On("UpdateStatus", ctx, payment.ID, core.PaymentStatusCreated, core.PaymentStatusCancelled).
			Return(true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CancelPayment(ctx, payment.ID.String())

		assert.IsType(t, input.CancelPaymentSuccess{}, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("approved payment yields PaymentHasBeenApprovedError, never already-cancelled", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusApproved)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CancelPayment(ctx, payment.ID.String())

		failure, ok := res.(input.PaymentHasBeenApprovedError)
		require.True(t, ok)
		assert.Equal(t, core.PaymentStatusApproved, failure.Status)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled payment is rejected", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		payment := testPayment(core.PaymentStatusCancelled)
		mockRepo.On("FindByID", ctx, payment.ID).Return(payment, true, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CancelPayment(ctx, payment.ID.String())

		failure, ok := res.(input.PaymentAlreadyCancelledError)
		require.True(t, ok)
		assert.Contains(t, failure.Message, "already cancelled")
	})

	t.Run("unknown payment yields PaymentNotFoundError", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		id := uuid.New()
		mockRepo.On("FindByID", ctx, id).Return(nil, false, nil)

		svc := service.NewPaymentService(mockRepo, quietPublisher(), zap.NewNop())

		res := svc.CancelPayment(ctx, id.String())

		assert.IsType(t, input.PaymentNotFoundError{}, res)
	})
}

// fakePaymentRepository is an in-memory store for multi-step scenarios.
type fakePaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]core.Payment
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{payments: make(map[uuid.UUID]core.Payment)}
}

func (f *fakePaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*core.Payment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (f *fakePaymentRepository) List(_ context.Context) ([]core.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepository) Create(_ context.Context, payment *core.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	f.payments[payment.ID] = *payment
	return nil
}

func (f *fakePaymentRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to core.PaymentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || !p.Status.Is(from) {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	f.payments[id] = p
	return true, nil
}

func TestPaymentService_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get round-trips every field", func(t *testing.T) {
		svc := service.NewPaymentService(newFakePaymentRepository(), quietPublisher(), zap.NewNop())

		created, ok := svc.CreatePayment(ctx, createInput()).(input.CreatePaymentSuccess)
		require.True(t, ok)

		got, ok := svc.GetPayment(ctx, created.PaymentID).(input.GetPaymentSuccess)
		require.True(t, ok)

		assert.Equal(t, created.PaymentID, got.Payment.ID.String())
		assert.Equal(t, core.PaymentStatusCreated, got.Payment.Status)
		assert.Equal(t, "3a0fa979-82ae-4352-a1ad-4f345dbcbafd", got.Payment.PayeeID)
		assert.Equal(t, "b0286d34-d1a3-465c-8334-9e0b0a7b465b", got.Payment.PayerID)
		assert.Equal(t, "ingenico", got.Payment.PaymentSystem)
		assert.Equal(t, "mastercard", got.Payment.PaymentMethod)
		assert.Equal(t, 10.25, got.Payment.Amount)
		assert.Equal(t, "USD", got.Payment.Currency)
		assert.Equal(t, "test", got.Payment.Comment)
	})

	t.Run("approve then cancel reports the approved conflict", func(t *testing.T) {
		svc := service.NewPaymentService(newFakePaymentRepository(), quietPublisher(), zap.NewNop())

		created, ok := svc.CreatePayment(ctx, createInput()).(input.CreatePaymentSuccess)
		require.True(t, ok)

		assert.IsType(t, input.ApprovePaymentSuccess{}, svc.ApprovePayment(ctx, created.PaymentID))

		res := svc.CancelPayment(ctx, created.PaymentID)
		failure, ok := res.(input.PaymentHasBeenApprovedError)
		require.True(t, ok)
		assert.Equal(t, core.PaymentStatusApproved, failure.Status)
	})

	t.Run("re-approving an approved payment is rejected", func(t *testing.T) {
		svc := service.NewPaymentService(newFakePaymentRepository(), quietPublisher(), zap.NewNop())

		created, ok := svc.CreatePayment(ctx, createInput()).(input.CreatePaymentSuccess)
		require.True(t, ok)

		assert.IsType(t, input.ApprovePaymentSuccess{}, svc.ApprovePayment(ctx, created.PaymentID))
		assert.IsType(t, input.PaymentAlreadyApprovedError{}, svc.ApprovePayment(ctx, created.PaymentID))
	})
}
