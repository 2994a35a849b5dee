package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflow/payments-api/internal/core/validation"
	"github.com/cashflow/payments-api/internal/port/input"
)

// PaymentHandler is a primary adapter (HTTP handler). It maps the service's
// result variants to status codes and payloads; it never inspects error
// strings.
type PaymentHandler struct {
	paymentService input.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService input.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GetPayments handles listing all payments
func (h *PaymentHandler) GetPayments(c echo.Context) error {
	switch res := h.paymentService.GetPayments(c.Request().Context()).(type) {
	case input.GetPaymentsSuccess:
		payments := make([]PaymentResponse, 0, len(res.Payments))
		for _, p := range res.Payments {
			payments = append(payments, toPaymentResponse(p))
		}
		return c.JSON(http.StatusOK, payments)
	default:
		return internalError(c)
	}
}

// CreatePayment handles payment creation
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req validation.CreatePaymentInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: msgValidation,
			Details: []validation.FieldError{{Message: "Invalid request body", Path: "body"}},
		})
	}

	switch res := h.paymentService.CreatePayment(c.Request().Context(), req).(type) {
	case input.CreatePaymentSuccess:
		return c.JSON(http.StatusCreated, CreatePaymentResponse{PaymentID: res.PaymentID})
	case input.CreatePaymentSchemaValidationError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: msgValidation,
			Details: res.Errors,
		})
	default:
		return internalError(c)
	}
}

// GetPayment handles payment retrieval by ID
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, errResp := paymentID(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, *errResp)
	}

	switch res := h.paymentService.GetPayment(c.Request().Context(), id).(type) {
	case input.GetPaymentSuccess:
		return c.JSON(http.StatusOK, toPaymentResponse(res.Payment))
	case input.PaymentNotFoundError:
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: ErrCodeNotFound, Message: msgNotFound})
	default:
		return internalError(c)
	}
}

// ApprovePayment handles the created -> approved transition
func (h *PaymentHandler) ApprovePayment(c echo.Context) error {
	id, errResp := paymentID(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, *errResp)
	}

	switch h.paymentService.ApprovePayment(c.Request().Context(), id).(type) {
	case input.ApprovePaymentSuccess:
		return c.NoContent(http.StatusOK)
	case input.PaymentNotFoundError:
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: ErrCodeNotFound, Message: msgNotFound})
	case input.PaymentHasBeenCancelledError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: ErrCodeCannotApprove, Message: msgCannotApprove})
	case input.PaymentAlreadyApprovedError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: ErrCodeAlreadyApproved, Message: msgAlreadyApproved})
	default:
		return internalError(c)
	}
}

// CancelPayment handles the created -> cancelled transition
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	id, errResp := paymentID(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, *errResp)
	}

	switch h.paymentService.CancelPayment(c.Request().Context(), id).(type) {
	case input.CancelPaymentSuccess:
		return c.NoContent(http.StatusOK)
	case input.PaymentNotFoundError:
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: ErrCodeNotFound, Message: msgNotFound})
	case input.PaymentHasBeenApprovedError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: ErrCodeCannotCancel, Message: msgCannotCancel})
	case input.PaymentAlreadyCancelledError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: ErrCodeAlreadyCancelled, Message: msgAlreadyCancelled})
	default:
		return internalError(c)
	}
}

// paymentID extracts and validates the :id path parameter
func paymentID(c echo.Context) (string, *ErrorResponse) {
	id := c.Param("id")
	if errs := validation.ValidateID(id); errs != nil {
		return "", &ErrorResponse{
			Code:    ErrCodeValidation,
			Message: msgValidation,
			Details: errs,
		}
	}
	return id, nil
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    ErrCodeInternal,
		Message: msgInternal,
	})
}
