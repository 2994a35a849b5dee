package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashflow/payments-api/internal/constant/model/db"
	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/port/output"
)

// GormPaymentRepository is a secondary adapter that implements the
// PaymentRepository output port
type GormPaymentRepository struct {
	gormDB *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(gormDB *gorm.DB) output.PaymentRepository {
	return &GormPaymentRepository{gormDB: gormDB}
}

// toCore converts db.Payment to core.Payment
func toCore(p *db.Payment) *core.Payment {
	return &core.Payment{
		ID:            p.ID,
		PayeeID:       p.PayeeID,
		PayerID:       p.PayerID,
		PaymentSystem: p.PaymentSystem,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Comment:       p.Comment,
		Status:        core.PaymentStatus(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// fromCore converts core.Payment to db.Payment
func fromCore(p *core.Payment) *db.Payment {
	return &db.Payment{
		ID:            p.ID,
		PayeeID:       p.PayeeID,
		PayerID:       p.PayerID,
		PaymentSystem: p.PaymentSystem,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Comment:       p.Comment,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FindByID retrieves a payment by its ID. A miss is reported through the
// found flag, not as an error.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*core.Payment, bool, error) {
	var dbPayment db.Payment
	if err := r.gormDB.WithContext(ctx).Where("id = ?", id).First(&dbPayment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find payment: %w", err)
	}
	return toCore(&dbPayment), true, nil
}

// List returns all payments. The slice is empty, never nil, when the table
// holds none.
func (r *GormPaymentRepository) List(ctx context.Context) ([]core.Payment, error) {
	var dbPayments []db.Payment
	if err := r.gormDB.WithContext(ctx).Find(&dbPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	payments := make([]core.Payment, 0, len(dbPayments))
	for i := range dbPayments {
		payments = append(payments, *toCore(&dbPayments[i]))
	}
	return payments, nil
}

// Create persists a new payment and copies back the generated ID and
// timestamps.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *core.Payment) error {
	dbPayment := fromCore(payment)
	if err := r.gormDB.WithContext(ctx).Create(dbPayment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	payment.ID = dbPayment.ID
	payment.CreatedAt = dbPayment.CreatedAt
	payment.UpdatedAt = dbPayment.UpdatedAt
	return nil
}

// UpdateStatus conditionally transitions the stored status in a single
// statement, so two concurrent transitions cannot both succeed. The stored
// status is matched after trimming and lower-casing to tolerate legacy
// values; the new status is written verbatim (canonical spelling).
func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to core.PaymentStatus) (bool, error) {
	res := r.gormDB.WithContext(ctx).
		Model(&db.Payment{}).
		Where("id = ? AND lower(trim(status)) = ?", id, string(from.Normalized())).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update payment status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
