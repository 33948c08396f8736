// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// GetRequestID returns the id assigned by RequestIDMiddleware, or "".
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
