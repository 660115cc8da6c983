package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type accessTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenClaims extracts the subject email and expiry from a JWT access token
// without verifying its signature. Signature validation belongs to the
// identity provider; the client only mirrors what it was handed.
func TokenClaims(raw string) (email string, expiresAt time.Time, err error) {
	claims := &accessTokenClaims{}
	if _, _, err = jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", time.Time{}, err
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Email, expiresAt, nil
}
