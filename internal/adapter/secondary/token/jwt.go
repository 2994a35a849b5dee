package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cashflow/payments-api/internal/port/output"
)

// JWTIssuer is a secondary adapter that implements the TokenIssuer output
// port using HS256-signed JWTs
type JWTIssuer struct {
	signingKey []byte
	ttl        time.Duration
}

// NewJWTIssuer creates a new JWT issuer
func NewJWTIssuer(signingKey string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{signingKey: []byte(signingKey), ttl: ttl}
}

var _ output.TokenIssuer = (*JWTIssuer)(nil)

// Issue returns a signed token carrying the user ID as subject
func (i *JWTIssuer) Issue(userID string) (string, time.Duration, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, i.ttl, nil
}

// Verify parses and validates a token, returning the user ID it carries.
// Only HS256 tokens signed with the issuer's key are accepted.
func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
