package core

import "github.com/google/uuid"

// User represents an API user. PasswordHash holds a bcrypt hash; the
// plaintext password never leaves the authentication path.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}
