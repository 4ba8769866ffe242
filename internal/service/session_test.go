package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/config"
)

func newTestSessions(now time.Time) *SessionServiceImpl {
	svc := NewSessionService(NewSessionConfigFromAuthConfig(config.AuthConfig{
		JWTSecretKey:    "test-secret",
		SessionTokenTTL: time.Hour,
	})).(*SessionServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	now := time.Now()
	svc := newTestSessions(now)

	session, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, int64(3600), session.ExpiresIn)

	sessionID, err := svc.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, sessionID)

	other, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, session.SessionID, other.SessionID)
}

func TestSessionService_Validate_Rejects(t *testing.T) {
	now := time.Now()
	svc := newTestSessions(now)
	valid, err := svc.Issue()
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		SessionID:        "s-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		svc   *SessionServiceImpl
	}{
		{name: "garbage", token: "not-a-jwt", svc: svc},
		{name: "wrong secret", token: forged, svc: svc},
		{name: "missing session id", token: noSession, svc: svc},
		{name: "expired", token: valid.Token, svc: newTestSessions(now.Add(2 * time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Validate(tt.token)

			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
