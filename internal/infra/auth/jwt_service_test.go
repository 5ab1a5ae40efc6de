package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savvy/config"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
)

func newTestSecurityConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.Security.SecretKey = secret
	cfg.Security.Algorithm = "HS256"
	cfg.Security.AccessTokenExpireMinutes = 30
	cfg.Security.RefreshTokenExpireMinutes = 60 * 24 * 7

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTService_CreateAndVerifyTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestSecurityConfig("test_secret_key_very_long_for_testing"), discardLogger())
	require.NoError(t, err)

	claims := service.SubjectClaims(42)
	claims["scope"] = "records"

	accessToken, err := jwtService.CreateAccessToken(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	accessClaims, err := jwtService.VerifyToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type())
	assert.Equal(t, "records", accessClaims["scope"])
	userID, err := accessClaims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	refreshToken, err := jwtService.CreateRefreshToken(claims)
	require.NoError(t, err)

	refreshClaims, err := jwtService.VerifyToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type())
	assert.Equal(t, "42", refreshClaims[service.ClaimSubject])

	// The caller's claim set is not mutated.
	_, hasType := claims[service.ClaimType]
	assert.False(t, hasType)
}

func TestJWTService_TokenLifetimes(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger(), WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	accessToken, err := jwtService.CreateAccessToken(service.SubjectClaims(1))
	require.NoError(t, err)
	refreshToken, err := jwtService.CreateRefreshToken(service.SubjectClaims(1))
	require.NoError(t, err)

	accessClaims, err := jwtService.VerifyToken(accessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.VerifyToken(refreshToken)
	require.NoError(t, err)

	// JSON numbers decode as float64.
	assert.InDelta(t, float64(issuedAt.Add(30*time.Minute).Unix()), accessClaims[service.ClaimExpiresAt], 0)
	assert.InDelta(t, float64(issuedAt.Add(7*24*time.Hour).Unix()), refreshClaims[service.ClaimExpiresAt], 0)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger(), WithClock(func() time.Time { return clock() }))
	require.NoError(t, err)

	token, err := jwtService.CreateAccessToken(service.SubjectClaims(7))
	require.NoError(t, err)

	_, err = jwtService.VerifyToken(token)
	require.NoError(t, err)

	clock = func() time.Time { return now.Add(31 * time.Minute) }

	_, err = jwtService.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger())
	require.NoError(t, err)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		claims, err := jwtService.VerifyToken(token)
		assert.Error(t, err, token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}
}

func TestJWTService_KeyRotationInvalidatesTokens(t *testing.T) {
	oldService, err := NewJWTService(newTestSecurityConfig("old-secret"), discardLogger())
	require.NoError(t, err)
	newService, err := NewJWTService(newTestSecurityConfig("new-secret"), discardLogger())
	require.NoError(t, err)

	token, err := oldService.CreateAccessToken(service.SubjectClaims(1))
	require.NoError(t, err)

	_, err = newService.VerifyToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger())
	require.NoError(t, err)

	claims := jwt.MapClaims{"sub": "1", "type": "access", "exp": time.Now().Add(time.Hour).Unix()}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = jwtService.VerifyToken(hs512)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = jwtService.VerifyToken(unsigned)
	assert.Error(t, err)
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger())
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "type": "access"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = jwtService.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTService_EncodeFailure(t *testing.T) {
	jwtService, err := NewJWTService(newTestSecurityConfig("secret"), discardLogger())
	require.NoError(t, err)

	claims := service.SubjectClaims(1)
	claims["bad"] = make(chan int)

	_, err = jwtService.CreateAccessToken(claims)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenEncodeFailed))
}

func TestNewJWTService_Configuration(t *testing.T) {
	_, err := NewJWTService(newTestSecurityConfig(""), discardLogger())
	assert.Error(t, err)

	cfg := newTestSecurityConfig("secret")
	cfg.Security.Algorithm = "RS256"
	_, err = NewJWTService(cfg, discardLogger())
	assert.Error(t, err)

	cfg.Security.Algorithm = "HS384"
	_, err = NewJWTService(cfg, discardLogger())
	assert.NoError(t, err)
}
