package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows the browser clients to reach the API and the WebSocket
// endpoint from another origin. Wide open: authentication is out of
// scope for this service.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
