package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSAllowHeaders lists the request headers browsers may send.
const CORSAllowHeaders = "authorization, x-client-info, apikey, content-type"

// CORS sets the cross-origin headers on every response and answers preflight
// requests before any other middleware or handler runs.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", CORSAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}

		c.Next()
	}
}
