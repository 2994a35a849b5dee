package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/cashflow/payments-api/internal/port/output"
)

// BcryptHasher is a secondary adapter that implements the PasswordHasher
// output port
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the default cost
func NewBcryptHasher() output.PasswordHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt hash from the plaintext
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash
func (h *BcryptHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
