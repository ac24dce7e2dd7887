package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies the two session tokens. Access tokens are
// stateless; refresh tokens are additionally persisted on the user record
// by the service for the rotation check.
type Codec interface {
	GenerateAccessToken(userID uuid.UUID) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (AccessClaims, error)
	ValidateRefreshToken(token string) (RefreshClaims, error)
}
