package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Request IDs correlate log lines with a client-reported request. The
// ID is echoed back on the response so callers can quote it.
const headerRequestID = "X-Request-ID"

// RequestIDMiddleware tags the request with the caller's ID, minting
// one when none was sent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(headerRequestID, id)
		c.Next()
	}
}
