package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeclock/internal/shared/contextutil"
)

// ContextLogger decorates the request context with a scoped logger and
// the authenticated identity, so services and repos can log with
// request metadata without knowing about gin. Runs after RequestID and
// AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := logger
		if l == nil {
			l = zap.L()
		}

		rid := c.GetString("request_id")
		eid := c.GetString("employee_id")

		reqLogger := l.With(
			zap.String("request_id", rid),
			zap.String("employee_id", eid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithEmployeeID(ctx, eid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
