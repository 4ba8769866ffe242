package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
)

// ErrInvalidToken is returned when a session token is malformed, forged or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

const sessionIssuer = "pack-pricing-service"

// SessionClaims are the claims of a storefront session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionService issues and validates anonymous storefront session tokens.
type SessionService interface {
	// Issue starts a new session.
	Issue() (*dto.SessionResponse, error)
	// Validate returns the session id carried by tokenString.
	Validate(tokenString string) (string, error)
}

// SessionConfig holds configuration for the session service.
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
}

// NewSessionConfigFromAuthConfig creates SessionConfig from config.AuthConfig.
func NewSessionConfigFromAuthConfig(authConfig config.AuthConfig) SessionConfig {
	return SessionConfig{
		SecretKey: authConfig.JWTSecretKey,
		TTL:       authConfig.SessionTokenTTL,
	}
}

// SessionServiceImpl implements SessionService with HS256 signed JWTs.
type SessionServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(cfg SessionConfig) SessionService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *SessionServiceImpl) Issue() (*dto.SessionResponse, error) {
	sessionID := uuid.NewString()
	now := s.now()

	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &dto.SessionResponse{
		SessionID: sessionID,
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

func (s *SessionServiceImpl) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
