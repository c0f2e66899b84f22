package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request and turns panics into JSON 500s so a
// bad import file can never take the dashboard down.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Printf(
					"panic method=%s path=%s error=%q stack=%s",
					c.Request.Method, c.Request.URL.Path, err.Error(), string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				return
			}

			log.Printf(
				"request status=%d method=%s path=%s query=%s client_ip=%s latency=%s",
				c.Writer.Status(),
				c.Request.Method,
				c.Request.URL.Path,
				c.Request.URL.RawQuery,
				c.ClientIP(),
				time.Since(start),
			)
		}()

		c.Next()
	}
}
