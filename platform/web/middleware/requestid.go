package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is read from the request and echoed on the response
	RequestIDHeader = "X-Request-Id"
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "requestID"
)

// RequestID keeps the caller's request id or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}
