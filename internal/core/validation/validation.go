package validation

import "github.com/google/uuid"

// FieldError describes a single failed validation rule. Path identifies the
// offending field so clients can highlight it.
type FieldError struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// CreatePaymentInput is the raw, untrusted shape of a create-payment request.
type CreatePaymentInput struct {
	PayeeID       string  `json:"payeeId"`
	PayerID       string  `json:"payerId"`
	PaymentSystem string  `json:"paymentSystem"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Comment       string  `json:"comment"`
}

const (
	msgInvalidUUID   = "Invalid uuid"
	msgMinLength     = "String must contain at least 1 character(s)"
	msgNonZeroAmount = "Amount must be a non-zero number"
)

type rule struct {
	path    string
	message string
	valid   func(in CreatePaymentInput) bool
}

// Rules are evaluated unconditionally and in declaration order, so the
// returned error list is deterministic: one entry per violated rule, ordered
// by field.
var createPaymentRules = []rule{
	{"payeeId", msgInvalidUUID, func(in CreatePaymentInput) bool { return isUUID(in.PayeeID) }},
	{"payerId", msgInvalidUUID, func(in CreatePaymentInput) bool { return isUUID(in.PayerID) }},
	{"paymentSystem", msgMinLength, func(in CreatePaymentInput) bool { return in.PaymentSystem != "" }},
	{"paymentMethod", msgMinLength, func(in CreatePaymentInput) bool { return in.PaymentMethod != "" }},
	{"amount", msgNonZeroAmount, func(in CreatePaymentInput) bool { return in.Amount != 0 }},
	{"currency", msgMinLength, func(in CreatePaymentInput) bool { return in.Currency != "" }},
	{"comment", msgMinLength, func(in CreatePaymentInput) bool { return in.Comment != "" }},
}

// ValidateCreatePayment checks every field of the input and collects all
// failures. It never short-circuits: an input with two bad fields yields two
// errors. A nil result means the input is valid.
func ValidateCreatePayment(in CreatePaymentInput) []FieldError {
	var errs []FieldError
	for _, r := range createPaymentRules {
		if !r.valid(in) {
			errs = append(errs, FieldError{Message: r.message, Path: r.path})
		}
	}
	return errs
}

// ValidateID checks that raw is a well-formed payment identifier.
func ValidateID(raw string) []FieldError {
	if !isUUID(raw) {
		return []FieldError{{Message: msgInvalidUUID, Path: "id"}}
	}
	return nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
