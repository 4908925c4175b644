// internal/middleware/session.go
package middleware

import "github.com/gin-gonic/gin"

const SessionHeader = "X-Session-ID"

// Session resolves the cart session for the request. A client without a
// session id gets a fresh one, echoed back in the response header so it can
// be replayed on subsequent requests.
func Session(newID func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = newID()
		}

		c.Set("session_id", id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}
