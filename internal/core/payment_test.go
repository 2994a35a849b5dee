package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cashflow/payments-api/internal/core"
)

func TestPaymentStatusNormalization(t *testing.T) {
	t.Run("canonical values match themselves", func(t *testing.T) {
		assert.True(t, core.PaymentStatusCreated.Is(core.PaymentStatusCreated))
		assert.True(t, core.PaymentStatusApproved.Is(core.PaymentStatusApproved))
		assert.True(t, core.PaymentStatusCancelled.Is(core.PaymentStatusCancelled))
	})

	t.Run("legacy casing and padding are tolerated on read", func(t *testing.T) {
		assert.True(t, core.PaymentStatus(" Cancelled ").Is(core.PaymentStatusCancelled))
		assert.True(t, core.PaymentStatus("APPROVED").Is(core.PaymentStatusApproved))
		assert.True(t, core.PaymentStatus("created\t").Is(core.PaymentStatusCreated))
	})

	t.Run("distinct statuses do not match", func(t *testing.T) {
		assert.False(t, core.PaymentStatus("approved").Is(core.PaymentStatusCancelled))
	})
}

func TestPaymentIsTerminal(t *testing.T) {
	assert.False(t, (&core.Payment{Status: core.PaymentStatusCreated}).IsTerminal())
	assert.True(t, (&core.Payment{Status: core.PaymentStatusApproved}).IsTerminal())
	assert.True(t, (&core.Payment{Status: core.PaymentStatus(" CANCELLED ")}).IsTerminal())
}
