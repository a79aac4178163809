package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediconnect/mediconnect-api/util"
)

// EndpointCallLogger logs each HTTP request as a security/endpoint event.
// It relies on the DatabaseMiddleware having already set DB in context and
// util.SetSecurityLoggerDB having been called during startup so events
// will be persisted to the SecurityLog table.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		principal := ""
		if hospital, ok := GetHospital(c); ok {
			principal = fmt.Sprintf("hospital:%d", hospital.ID)
		} else if doctor, ok := GetDoctor(c); ok {
			principal = fmt.Sprintf("doctor:%d", doctor.ID)
		}

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			Principal: principal,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
