package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/service"
)

// SessionHandler starts anonymous storefront sessions.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession handles POST /api/sessions.
//
// @Summary      Start a storefront session
// @Description  Returns a new session id and a signed session token. Send the token as a Bearer token on cart routes, or the id as X-Session-ID when auth is disabled.
// @Tags         Sessions
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=dto.SessionResponse} "New session"
// @Failure      500 {object} dto.ErrorResponse "Token could not be signed"
// @Router       /api/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	session, err := h.sessions.Issue()
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessCreated(session)
}
