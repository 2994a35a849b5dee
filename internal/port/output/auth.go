package output

import "time"

// PasswordHasher is an output port for one-way credential handling. The core
// never reimplements hashing; it only asks whether a plaintext matches a
// stored hash.
type PasswordHasher interface {
	// Hash derives a one-way hash from a plaintext password
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash
	Verify(hash, plaintext string) bool
}

// TokenIssuer is an output port for the token-issuing collaborator. The core
// supplies only the validated user identity.
type TokenIssuer interface {
	// Issue returns a signed token for the user and its time to live
	Issue(userID string) (token string, expiresIn time.Duration, err error)
}
