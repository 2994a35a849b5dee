package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents a payment entity in the database. Status is stored as
// written by the service (canonical lowercase); reads elsewhere tolerate
// legacy casing.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PayeeID       string    `gorm:"type:uuid;not null" json:"payee_id"`
	PayerID       string    `gorm:"type:uuid;not null" json:"payer_id"`
	PaymentSystem string    `gorm:"type:varchar(255);not null" json:"payment_system"`
	PaymentMethod string    `gorm:"type:varchar(255);not null" json:"payment_method"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(10);not null" json:"currency"`
	Comment       string    `gorm:"type:varchar(255);not null" json:"comment"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

// User represents an API user in the database
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
