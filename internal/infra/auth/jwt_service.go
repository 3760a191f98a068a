package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"contacts/config"
	"contacts/internal/domain/service"
)

const defaultTokenTTL = 23 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs an HS256 token carrying the user id. Every token gets its own
// jti so two logins within the same second still yield different tokens.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := service.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded user id.
func (s *jwtService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, errors.Wrap(service.ErrInvalidToken, "malformed subject")
	}

	return userID, nil
}

// TTL returns the configured lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
