package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

// AuditHandler exposes the cart audit trail to administrators.
type AuditHandler struct {
	logs service.LoggingService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(logs service.LoggingService) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// SessionHistory handles GET /api/admin/sessions/:session_id/history.
//
// @Summary      Cart audit trail of a session
// @Description  Lists the cart changes recorded for a session, newest first.
// @Tags         Sessions
// @Produce      json
// @Security     ApiKeyAuth
// @Param        session_id path  string true  "Session ID"
// @Param        limit      query int    false "Maximum entries (default and max 100)"
// @Success      200 {object} dto.SuccessResponse{data=[]model.LogEntry} "Audit entries"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Router       /api/admin/sessions/{session_id}/history [get]
func (h *AuditHandler) SessionHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			builder.BindError(&dto.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := h.logs.SessionHistory(c.Request.Context(), c.Param("session_id"), limit)
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(entries)
}
