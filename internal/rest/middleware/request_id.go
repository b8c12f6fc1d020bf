package middleware

import (
	"context"

	"github.com/apnmt/payment/internal/types"
	"github.com/gin-gonic/gin"
)

const headerRequestID = "X-Request-ID"

// RequestIDMiddleware assigns each request an id, honoring one supplied by
// the caller, and echoes it back in the response headers.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(headerRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(headerRequestID, requestID)

	c.Next()
}
