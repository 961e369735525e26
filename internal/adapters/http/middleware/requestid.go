package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader はリクエスト ID を受け渡すヘッダー名です。
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID は受信したリクエスト ID を引き継ぎ、無ければ UUID を採番します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom はコンテキストに格納されたリクエスト ID を返します。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
