package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every reason a session token is rejected:
// bad signature, unexpected algorithm, malformed payload or elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a session token.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue creates a signed token whose subject is userID.
	Issue(userID uuid.UUID) (string, error)

	// Verify returns the user ID encoded in a valid token, or ErrInvalidToken.
	Verify(token string) (uuid.UUID, error)

	// TTL returns how long an issued token stays valid.
	TTL() time.Duration
}
