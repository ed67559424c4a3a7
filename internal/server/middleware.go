package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/tutera-org/tutera-frontend-sub001/internal/tenant"
)

const (
	requestIDKey = "request_id"
	tenantKey    = "tenant"
)

// requestIDMiddleware assigns each request a ULID and echoes it back so
// failures can be correlated with backend logs
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = ulid.Make().String()
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)

		c.Next()
	}
}

// tenantMiddleware resolves the tenant subdomain from the request host.
// Resolution only annotates logs; tenancy is enforced upstream.
func tenantMiddleware(rootDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if name, ok := tenant.FromHost(c.Request.Host, rootDomain); ok {
			c.Set(tenantKey, name)
		}

		c.Next()
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		event := s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey))

		if name := c.GetString(tenantKey); name != "" {
			event = event.Str("tenant", name)
		}

		event.Msg("HTTP request")
	}
}
