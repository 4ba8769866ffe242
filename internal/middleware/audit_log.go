package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// AuditLog records an administrative or storefront action. Cart mutations are audited by
// the cart service itself; handlers use this for catalog changes.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]any) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]any) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]any) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		SessionID:  GetSessionID(c),
		ActionType: actionType,
	}
	entry.WithFields(fields)
	if key := GetAdminKey(c); key != "" {
		entry.WithField("api_key", key)
	}
	return entry
}
