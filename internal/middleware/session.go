package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/i18n"
)

const (
	sessionIDContextKey = "session_id"
	bearerPrefix        = "Bearer "
	maxSessionIDLength  = 128
)

// SessionValidator resolves a session token to its session id.
type SessionValidator interface {
	Validate(tokenString string) (string, error)
}

// Session identifies the storefront session of a cart request.
//
// With a validator the session comes from a Bearer token; without one the X-Session-ID
// header is trusted as is, which is how the service runs when auth is disabled.
func Session(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if validator == nil {
			sessionID = strings.TrimSpace(c.GetHeader(SessionIDHeader))
			if sessionID == "" || len(sessionID) > maxSessionIDLength {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeySessionRequired)
				return
			}
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
				return
			}
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			id, err := validator.Validate(token)
			if err != nil {
				log := RequestLog(c)
				log.Debug().Err(err).Msg("Rejected session token")
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			sessionID = id
		}

		c.Set(sessionIDContextKey, sessionID)
		c.Header(SessionIDHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDContextKey)
}
