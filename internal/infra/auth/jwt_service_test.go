package auth

import (
	"testing"
	"time"

	"contacts/config"
	"contacts/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{SecretKey: testSecret})
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_ClaimsShape(t *testing.T) {
	svc := newTestJWTService(t)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)

	claims := &service.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(23*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, 23*time.Hour, svc.TTL())
}

func TestJWTService_DistinctTokensPerIssue(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	first, err := svc.Issue(userID)
	require.NoError(t, err)
	second, err := svc.Issue(userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(23*time.Hour + time.Minute) }
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	other, err := NewJWTService(&config.Config{SecretKey: "another_secret"})
	require.NoError(t, err)
	foreign, err := other.Issue(userID)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, service.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, service.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		UserID: userID.String(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		UserID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not.a.jwt",
		"empty":          "",
		"foreign secret": foreign,
		"alg none":       none,
		"other alg":      hs512,
		"no expiry":      noExpiry,
		"bad subject":    badSubject,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.True(t, errors.Is(err, service.ErrInvalidToken))
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestNewJWTService_ConfiguredTTL(t *testing.T) {
	svc, err := NewJWTService(&config.Config{
		SecretKey: testSecret,
		Auth:      &config.AuthConfig{TokenTTL: time.Hour},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Hour, svc.TTL())
}
