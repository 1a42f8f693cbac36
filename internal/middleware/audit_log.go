package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/logger"
	"github.com/rs/zerolog"
)

// Audit actions recorded for menu writes.
const (
	AuditActionMenuUpsert  = "menu.upsert"
	AuditActionMenuDelete  = "menu.delete"
	AuditActionMenuRefresh = "menu.refresh"
)

// AuditLog records a state-changing action together with the principal
// that performed it.
func AuditLog(c *gin.Context, action, message string, fields map[string]interface{}) {
	event := auditEvent(c, zerolog.InfoLevel, action, fields)
	event.Msg(message)
}

// AuditLogError records a failed state-changing action.
func AuditLogError(c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	event := auditEvent(c, zerolog.ErrorLevel, action, fields)
	event.Err(err).Msg(message)
}

func auditEvent(c *gin.Context, level zerolog.Level, action string, fields map[string]interface{}) *zerolog.Event {
	l := logger.FromContext(c.Request.Context())
	event := l.WithLevel(level).
		Bool("audit", true).
		Str("action", action).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("ip", c.ClientIP())

	if p := GetPrincipal(c); p != nil {
		event = event.Str("principal", p.Subject).Str("auth_method", p.Method)
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	return event
}
