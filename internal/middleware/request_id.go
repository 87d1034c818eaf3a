package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if request already has a request ID
		requestID := c.GetHeader(RequestIDHeader)

		// If not, generate a new one
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}

		// Echo it back so clients can correlate
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}
