package auth

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"savvy/config"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	method     jwt.SigningMethod
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// JWTOption customises a jwtService.
type JWTOption func(*jwtService)

// WithClock replaces time.Now, used by tests to age tokens.
func WithClock(now func() time.Time) JWTOption {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config, logger *slog.Logger, opts ...JWTOption) (service.TokenService, error) {
	sec := cfg.Security
	if sec.SecretKey == "" {
		return nil, errors.New("jwt secret key must be provided")
	}

	method, ok := jwt.GetSigningMethod(sec.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Errorf("unsupported signing algorithm %q", sec.Algorithm)
	}

	s := &jwtService{
		method:     method,
		secret:     []byte(sec.SecretKey),
		accessTTL:  sec.AccessTokenTTL(),
		refreshTTL: sec.RefreshTokenTTL(),
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *jwtService) CreateAccessToken(claims service.Claims) (string, error) {
	return s.createToken(claims, service.TokenTypeAccess, s.accessTTL)
}

func (s *jwtService) CreateRefreshToken(claims service.Claims) (string, error) {
	return s.createToken(claims, service.TokenTypeRefresh, s.refreshTTL)
}

// VerifyToken checks the signature, the algorithm and the expiry.
func (s *jwtService) VerifyToken(tokenString string) (service.Claims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, err.Error())
	}

	return service.Claims(claims), nil
}

func (s *jwtService) createToken(claims service.Claims, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()

	payload := make(jwt.MapClaims, len(claims)+3)
	maps.Copy(payload, claims)
	payload[service.ClaimType] = tokenType
	payload[service.ClaimIssuedAt] = now.Unix()
	payload[service.ClaimExpiresAt] = now.Add(ttl).Unix()

	signed, err := jwt.NewWithClaims(s.method, payload).SignedString(s.secret)
	if err != nil {
		// Claim values stay out of the log.
		s.logger.Error("Failed to encode token",
			slog.String("token_type", tokenType),
			slog.String("error_type", fmt.Sprintf("%T", err)),
		)

		return "", errors.Wrap(domainerrors.ErrTokenEncodeFailed, tokenType)
	}

	return signed, nil
}
