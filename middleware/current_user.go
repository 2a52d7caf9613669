package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the acting user from the X-User-ID header. Session and
// token mechanics live upstream (gateway); this service only needs an
// identity to attach to bookings and refund requests.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id != 0 {
				c.Set("userId", uint(id))
			}
		}
		c.Next()
	}
}
