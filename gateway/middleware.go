package gateway

import (
	"fmt"
	"strconv"
	"time"

	"omdb_proxy/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestLogger writes one line per request:
//
//	GET /?i=tt1375666 200 12.345 ms - 43
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		size := "-"
		if n := c.Writer.Size(); n >= 0 {
			size = strconv.Itoa(n)
		}
		dur := float64(time.Since(start).Microseconds()) / 1000
		logger.Default().Info(
			fmt.Sprintf("%s %s %d %.3f ms - %s", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), dur, size),
			"request_id", id,
			"cache", c.Writer.Header().Get("X-Cache"),
		)
	}
}
